package covcache

import "errors"

// Sentinel errors for covcache operations.
var (
	// ErrEmptyGrid indicates a cache was built over zero voxels.
	ErrEmptyGrid = errors.New("covcache: voxel grid must have at least one voxel")
	// ErrNonPositiveDelta indicates delta was <= 0.
	ErrNonPositiveDelta = errors.New("covcache: delta must be positive")
	// ErrNotPositiveDefinite indicates K(delta) failed its Cholesky factorization.
	ErrNotPositiveDefinite = errors.New("covcache: K(delta) is not symmetric positive definite")
	// ErrDimensionMismatch indicates C's dimension does not match the cache's voxel count.
	ErrDimensionMismatch = errors.New("covcache: matrix dimension does not match voxel count")
	// ErrInvalidRange indicates a search range's lower bound was not below its upper bound.
	ErrInvalidRange = errors.New("covcache: search range lower bound must be < upper bound")
	// ErrSearchDiverged indicates a delta/rho search failed to bracket a root within its evaluation budget.
	ErrSearchDiverged = errors.New("covcache: delta search did not converge within its evaluation budget")
	// ErrUnknownMetric indicates a Metric value outside the declared enum.
	ErrUnknownMetric = errors.New("covcache: unknown distance metric")
)
