package fwdmodel

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/transform"
)

// Polynomial is the degree-D reference model of spec §8 scenario 2:
// f(theta)[t] = sum_{k=0}^{D} theta[k] * t^k, for t = 1..T.
type Polynomial struct {
	degree        int
	numTimepoints int
}

// NewPolynomial builds a Polynomial model of the given degree over
// numTimepoints observations (timepoints indexed 1..numTimepoints).
func NewPolynomial(degree, numTimepoints int) *Polynomial {
	return &Polynomial{degree: degree, numTimepoints: numTimepoints}
}

func (p *Polynomial) NumParams() int     { return p.degree + 1 }
func (p *Polynomial) NumTimepoints() int { return p.numTimepoints }

func (p *Polynomial) ParamNames() []string {
	names := make([]string, p.degree+1)
	for k := range names {
		names[k] = "c" + strconv.Itoa(k)
	}
	return names
}

func (p *Polynomial) HardcodedInitial() []transform.DistParams {
	out := make([]transform.DistParams, p.degree+1)
	for i := range out {
		out[i] = transform.DistParams{Mean: 0, Var: 1e6}
	}
	return out
}

func (p *Polynomial) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != p.NumParams() {
		return nil, ErrParamCountMismatch
	}
	out := make([]float64, p.numTimepoints)
	for ti := 0; ti < p.numTimepoints; ti++ {
		t := float64(ti + 1)
		sum := 0.0
		pow := 1.0
		for k := 0; k <= p.degree; k++ {
			sum += theta[k] * pow
			pow *= t
		}
		out[ti] = sum
	}
	return out, nil
}

func (p *Polynomial) Jacobian(theta []float64) (*mat.Dense, error) {
	if len(theta) != p.NumParams() {
		return nil, ErrParamCountMismatch
	}
	jac := mat.NewDense(p.numTimepoints, p.NumParams(), nil)
	for ti := 0; ti < p.numTimepoints; ti++ {
		t := float64(ti + 1)
		pow := 1.0
		for k := 0; k <= p.degree; k++ {
			jac.Set(ti, k, pow)
			pow *= t
		}
	}
	return jac, nil
}
