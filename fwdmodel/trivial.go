package fwdmodel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/transform"
)

// Trivial is the one-parameter constant model: f(theta)[t] = theta[0] for
// every t. It is the reference model for spec §8 scenario 1.
type Trivial struct {
	numTimepoints int
	initialMean   float64
	initialVar    float64
}

// NewTrivial builds a Trivial model over numTimepoints observations with
// the given model-space initial (mean, var) for its single parameter.
func NewTrivial(numTimepoints int, initialMean, initialVar float64) *Trivial {
	return &Trivial{numTimepoints: numTimepoints, initialMean: initialMean, initialVar: initialVar}
}

func (t *Trivial) NumParams() int       { return 1 }
func (t *Trivial) ParamNames() []string { return []string{"mean"} }
func (t *Trivial) NumTimepoints() int   { return t.numTimepoints }

func (t *Trivial) HardcodedInitial() []transform.DistParams {
	return []transform.DistParams{{Mean: t.initialMean, Var: t.initialVar}}
}

func (t *Trivial) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != 1 {
		return nil, ErrParamCountMismatch
	}
	out := make([]float64, t.numTimepoints)
	for i := range out {
		out[i] = theta[0]
	}
	return out, nil
}

func (t *Trivial) Jacobian(theta []float64) (*mat.Dense, error) {
	if len(theta) != 1 {
		return nil, ErrParamCountMismatch
	}
	data := make([]float64, t.numTimepoints)
	for i := range data {
		data[i] = 1
	}
	return mat.NewDense(t.numTimepoints, 1, data), nil
}
