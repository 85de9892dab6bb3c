package vb

import "errors"

// Sentinel errors for vb operations.
var (
	// ErrDimensionMismatch indicates a config's per-parameter slices
	// (Transforms, Priors) or an observation vector disagree with the
	// forward model's declared NumParams/NumTimepoints.
	ErrDimensionMismatch = errors.New("vb: dimension mismatch")
	// ErrVoxelFailed indicates the voxel was marked failed: a Cholesky
	// factorization failed and its posterior was left unchanged (spec §4.6
	// tie-break c), or its reverts were exhausted.
	ErrVoxelFailed = errors.New("vb: voxel failed (non-SPD covariance)")
)
