package noise

import "errors"

var (
	// ErrDegenerateUpdate indicates the Gamma scale update produced a non-positive denominator.
	ErrDegenerateUpdate = errors.New("noise: degenerate precision update")
	// ErrDimensionMismatch indicates a residual/trace argument didn't match this posterior's expectations.
	ErrDimensionMismatch = errors.New("noise: dimension mismatch")
)

// ErrARDiverged is not a fatal error: it reports that the AR(1) coefficient
// update exceeded the stability bound and was clamped, per spec §4.4's
// invariant. Callers may log it without aborting the voxel.
var ErrARDiverged = errors.New("noise: AR(1) coefficient update diverged and was clamped")
