package modelstore

import "errors"

var (
	// ErrAlreadyRegistered indicates a model name was registered twice.
	ErrAlreadyRegistered = errors.New("modelstore: model name already registered")
	// ErrDynamicLoadUnsupported indicates plugin loading isn't available on this platform/build.
	ErrDynamicLoadUnsupported = errors.New("modelstore: dynamic model loading unsupported on this platform")
	// ErrPluginMissingFactory indicates a loaded plugin had no RegisterFabberModels symbol.
	ErrPluginMissingFactory = errors.New("modelstore: plugin has no RegisterFabberModels symbol")
)
