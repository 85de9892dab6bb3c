package nlls

import "errors"

var (
	// ErrDimensionMismatch indicates y's length disagrees with the
	// model's timepoint count, or an initial theta's length disagrees
	// with the model's parameter count.
	ErrDimensionMismatch = errors.New("nlls: dimension mismatch")
	// ErrSingularNormalEquations indicates the Gauss-Newton normal
	// equations (J^T J) were not positive-definite at some iteration.
	ErrSingularNormalEquations = errors.New("nlls: singular normal equations")
	// ErrDiverged indicates step-halving was exhausted without reducing
	// the residual sum of squares.
	ErrDiverged = errors.New("nlls: diverged")
)
