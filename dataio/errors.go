package dataio

import "errors"

var (
	// ErrDimensionMismatch indicates a Volume's Data length disagrees
	// with DimX*DimY*DimZ*DimT.
	ErrDimensionMismatch = errors.New("dataio: dimension mismatch")
	// ErrNonPositiveDims indicates a zero or negative volume dimension.
	ErrNonPositiveDims = errors.New("dataio: non-positive dimension")
	// ErrTruncatedFile indicates fewer samples were read than the header
	// declared.
	ErrTruncatedFile = errors.New("dataio: truncated volume file")
)
