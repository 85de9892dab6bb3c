// Package testutil builds synthetic voxel grids and timeseries for
// tests, via the same functional-option + resolved
// config pattern the teacher's builder package uses for graph fixtures.
package testutil
