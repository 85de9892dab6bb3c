package fwdmodel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/transform"
)

// Linear wraps an arbitrary T x P design matrix X: f(theta) = X*theta.
type Linear struct {
	design  *mat.Dense // T x P
	names   []string
	initial []transform.DistParams
}

// NewLinear builds a Linear model from design (T x P), with display names
// and model-space initial (mean, var) per column. len(names) and
// len(initial) must equal design's column count.
func NewLinear(design *mat.Dense, names []string, initial []transform.DistParams) (*Linear, error) {
	_, cols := design.Dims()
	if cols == 0 || len(names) != cols || len(initial) != cols {
		return nil, ErrInvalidDesign
	}
	return &Linear{design: design, names: names, initial: initial}, nil
}

func (l *Linear) NumParams() int       { return len(l.names) }
func (l *Linear) ParamNames() []string { return append([]string(nil), l.names...) }
func (l *Linear) NumTimepoints() int   { r, _ := l.design.Dims(); return r }

func (l *Linear) HardcodedInitial() []transform.DistParams {
	return append([]transform.DistParams(nil), l.initial...)
}

func (l *Linear) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != l.NumParams() {
		return nil, ErrParamCountMismatch
	}
	thetaVec := mat.NewVecDense(len(theta), theta)
	var y mat.VecDense
	y.MulVec(l.design, thetaVec)
	out := make([]float64, l.NumTimepoints())
	mat.Col(out, 0, &y)
	return out, nil
}

// Jacobian for a linear model is the design matrix itself, independent of
// theta.
func (l *Linear) Jacobian(theta []float64) (*mat.Dense, error) {
	if len(theta) != l.NumParams() {
		return nil, ErrParamCountMismatch
	}
	jac := &mat.Dense{}
	jac.CloneFrom(l.design)
	return jac, nil
}
