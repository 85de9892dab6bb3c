package prior

import "errors"

var (
	// ErrDegenerateARD indicates mu^2+Sigma[p,p] was non-positive, so the ARD precision is undefined.
	ErrDegenerateARD = errors.New("prior: ARD denominator non-positive")
	// ErrDegenerateSpatial indicates a spatial prior's conditional precision was non-positive.
	ErrDegenerateSpatial = errors.New("prior: spatial conditional precision non-positive")
	// ErrNoContribution indicates a parameter has no configured prior variants.
	ErrNoContribution = errors.New("prior: parameter has no prior contribution")
	// ErrUnknownKindChar indicates a config-string character did not map to a known prior kind.
	ErrUnknownKindChar = errors.New("prior: unrecognised prior-kind character")
)
