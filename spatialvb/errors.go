package spatialvb

import "errors"

var (
	// ErrDimensionMismatch marks a Config whose per-parameter slices
	// (Transforms, Priors) don't both have length P, or data whose row
	// count differs from the Grid's voxel count.
	ErrDimensionMismatch = errors.New("spatialvb: dimension mismatch")
	// ErrNoVoxels marks a Config whose Grid has zero voxels.
	ErrNoVoxels = errors.New("spatialvb: grid has no voxels")
	// ErrOuterDiverged marks an outer iteration whose aggregate free
	// energy became non-finite.
	ErrOuterDiverged = errors.New("spatialvb: outer free energy diverged")
)
