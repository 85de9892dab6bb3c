package neighbours

import "errors"

// Sentinel errors for neighbours operations.
var (
	// ErrInvalidSpatialDims indicates spatial_dims was not one of 0, 2, 3.
	ErrInvalidSpatialDims = errors.New("neighbours: spatial_dims must be 0, 2, or 3")
	// ErrIndexOutOfRange indicates a voxel index fell outside [0, V).
	ErrIndexOutOfRange = errors.New("neighbours: voxel index out of range")
)
