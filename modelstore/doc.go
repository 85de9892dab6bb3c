// Package modelstore is the process-wide forward-model registry of spec
// §6: a closed set of built-in models (linear, poly, trivial) plus
// --loadmodels support for registering additional factories from a shared
// library. Per spec.md §9's "Singletons" design note, the registry is a
// single value built at program start; registrations happen during
// package init() and during an explicit LoadPlugin call, never
// concurrently with lookups in practice (both happen before any voxel
// work begins), but the map is still guarded for safety.
package modelstore
