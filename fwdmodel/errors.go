package fwdmodel

import "errors"

var (
	// ErrParamCountMismatch indicates theta's length did not match NumParams().
	ErrParamCountMismatch = errors.New("fwdmodel: parameter count mismatch")
	// ErrInvalidDesign indicates a design matrix with no columns, or names
	// or initial values whose count differs from its column count.
	ErrInvalidDesign = errors.New("fwdmodel: invalid design matrix")
	// ErrUnknownModel indicates a --model= name not present in the registry.
	ErrUnknownModel = errors.New("fwdmodel: unknown model name")
)
