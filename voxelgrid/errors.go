package voxelgrid

import "errors"

// Sentinel errors for voxelgrid operations.
var (
	// ErrEmptyGrid indicates a grid was built with zero active voxels.
	ErrEmptyGrid = errors.New("voxelgrid: no active voxels (empty coordinate list or all-zero mask)")
	// ErrDimensionMismatch indicates a mask volume's length does not match dimX*dimY*dimZ.
	ErrDimensionMismatch = errors.New("voxelgrid: mask length does not match dimX*dimY*dimZ")
	// ErrNonPositiveDims indicates one of dimX, dimY, dimZ was <= 0.
	ErrNonPositiveDims = errors.New("voxelgrid: dimX, dimY, dimZ must all be positive")
	// ErrDuplicateCoord indicates two entries of an explicit coordinate list collide.
	ErrDuplicateCoord = errors.New("voxelgrid: duplicate voxel coordinate")
	// ErrIndexOutOfRange indicates a voxel index fell outside [0, V).
	ErrIndexOutOfRange = errors.New("voxelgrid: voxel index out of range")
)
