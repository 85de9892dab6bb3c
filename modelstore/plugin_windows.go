//go:build windows

package modelstore

// LoadPlugin is unsupported on windows: the standard library's plugin
// package only implements linux/darwin shared-object loading.
func LoadPlugin(r *Registry, path string) error {
	return ErrDynamicLoadUnsupported
}
