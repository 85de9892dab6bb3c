package transform

import "errors"

// ErrUnknownTransform indicates a transform name not in the registry.
var ErrUnknownTransform = errors.New("transform: unknown transform name")
