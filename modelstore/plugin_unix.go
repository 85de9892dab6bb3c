//go:build !windows

package modelstore

import "plugin"

// RegisterFunc is the symbol a --loadmodels shared library must export,
// named "RegisterFabberModels", with signature func(*Registry).
type RegisterFunc func(*Registry)

// LoadPlugin opens the shared library at path and calls its
// RegisterFabberModels(*Registry) symbol against r, implementing spec
// §6's "--loadmodels=<path>: loads an additional model provider from a
// shared library; the loaded library must register its forward-model
// factory by name."
func LoadPlugin(r *Registry, path string) error {
	p, err := plugin.Open(path)
	if err != nil {
		return err
	}
	sym, err := p.Lookup("RegisterFabberModels")
	if err != nil {
		return ErrPluginMissingFactory
	}
	register, ok := sym.(func(*Registry))
	if !ok {
		return ErrPluginMissingFactory
	}
	register(r)
	return nil
}
