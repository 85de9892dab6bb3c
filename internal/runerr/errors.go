// Package runerr centralizes the error-kind taxonomy a fabber run reports:
// invalid option, missing option, data-not-found, data-load, dimension
// mismatch, numerical, and internal failures. A RunError carries enough
// structured context (voxel coordinates, parameter index) for the log
// file to name the offending unit without string-parsing a message.
package runerr

import (
	"errors"
	"fmt"
)

// Kind classifies a run error per spec §7.
type Kind int

const (
	// KindInvalidOption marks an unknown key, wrong type, or forbidden value.
	KindInvalidOption Kind = iota
	// KindMissingOption marks a required option that was never supplied.
	KindMissingOption
	// KindDataNotFound marks a referenced data file that does not exist.
	KindDataNotFound
	// KindDataLoad marks an I/O or malformed-data failure while reading a file.
	KindDataLoad
	// KindDimensionMismatch marks incompatible shapes between mask, data, coords, model.
	KindDimensionMismatch
	// KindNumerical marks a non-SPD covariance, Cholesky failure, or delta-search divergence.
	KindNumerical
	// KindInternal marks an assertion breach that should never occur in correct code.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidOption:
		return "invalid-option"
	case KindMissingOption:
		return "missing-option"
	case KindDataNotFound:
		return "data-not-found"
	case KindDataLoad:
		return "data-load"
	case KindDimensionMismatch:
		return "dimension-mismatch"
	case KindNumerical:
		return "numerical"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is comparisons that don't need voxel context.
var (
	ErrInvalidOption     = errors.New("runerr: invalid option")
	ErrMissingOption     = errors.New("runerr: missing required option")
	ErrDataNotFound      = errors.New("runerr: data not found")
	ErrDataLoad          = errors.New("runerr: data load failed")
	ErrDimensionMismatch = errors.New("runerr: dimension mismatch")
	ErrNumerical         = errors.New("runerr: numerical failure")
	ErrInternal          = errors.New("runerr: internal assertion breach")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindInvalidOption:
		return ErrInvalidOption
	case KindMissingOption:
		return ErrMissingOption
	case KindDataNotFound:
		return ErrDataNotFound
	case KindDataLoad:
		return ErrDataLoad
	case KindDimensionMismatch:
		return ErrDimensionMismatch
	case KindNumerical:
		return ErrNumerical
	default:
		return ErrInternal
	}
}

// Voxel identifies the lattice coordinate a RunError occurred at. A Voxel
// with Index < 0 means the error is not voxel-scoped (e.g. an option error
// raised before any voxel work began).
type Voxel struct {
	Index   int
	X, Y, Z int
}

// RunError is the structured error carried through §7's propagation policy.
// Param is -1 when the error is not specific to one parameter.
type RunError struct {
	Kind    Kind
	Voxel   Voxel
	Param   int
	Message string
	Cause   error
}

// New builds a RunError not scoped to any voxel or parameter.
func New(kind Kind, message string, cause error) *RunError {
	return &RunError{Kind: kind, Voxel: Voxel{Index: -1}, Param: -1, Message: message, Cause: cause}
}

// AtVoxel builds a RunError scoped to voxel v, optionally a parameter index.
func AtVoxel(kind Kind, v Voxel, param int, message string, cause error) *RunError {
	return &RunError{Kind: kind, Voxel: v, Param: param, Message: message, Cause: cause}
}

func (e *RunError) Error() string {
	if e.Voxel.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Param < 0 {
		return fmt.Sprintf("%s: voxel %d (%d,%d,%d): %s", e.Kind, e.Voxel.Index, e.Voxel.X, e.Voxel.Y, e.Voxel.Z, e.Message)
	}
	return fmt.Sprintf("%s: voxel %d (%d,%d,%d) param %d: %s", e.Kind, e.Voxel.Index, e.Voxel.X, e.Voxel.Y, e.Voxel.Z, e.Param, e.Message)
}

// Unwrap exposes the underlying cause, and falls back to the kind's sentinel
// so errors.Is(err, runerr.ErrNumerical) works even without a wrapped cause.
func (e *RunError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return sentinelFor(e.Kind)
}

// Is reports whether target is this error's kind sentinel, so
// errors.Is(err, runerr.ErrNumerical) works regardless of Cause.
func (e *RunError) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}
