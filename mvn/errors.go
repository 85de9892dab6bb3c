package mvn

import "errors"

// Sentinel errors for mvn operations.
var (
	// ErrDimensionMismatch indicates an operand's length/shape does not match this MVN's dimension.
	ErrDimensionMismatch = errors.New("mvn: dimension mismatch")
	// ErrNotPositiveDefinite indicates a Cholesky factorization of the covariance or precision failed.
	ErrNotPositiveDefinite = errors.New("mvn: matrix is not symmetric positive definite")
	// ErrEmptyDimension indicates a zero or negative dimension was requested.
	ErrEmptyDimension = errors.New("mvn: dimension must be positive")
	// ErrIndexOutOfRange indicates a marginalise/index request fell outside [0, n).
	ErrIndexOutOfRange = errors.New("mvn: index out of range")
)
