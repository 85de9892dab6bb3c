// Package neighbours builds the first- and second-order spatial
// neighbour relation of spec §4.8 from a voxelgrid.Grid: N1(v) is every
// voxel at lattice distance 1 along one of the active spatial_dims axes
// (axis-aligned unit steps); N2(v) is every voxel reached by a diagonal
// step across two or three of those axes simultaneously. spatial_dims=0
// disables the relation entirely (every voxel is isolated); =2
// restricts movement to the X/Y in-slice axes; =3 allows X/Y/Z.
//
// Adapted from the teacher's gridgraph (4-/8-connectivity offset tables)
// generalized from a fixed 2D grid to an arbitrary voxelgrid.Grid, and
// from graph/core's adjacency-list storage (ragged slices behind a
// sync.RWMutex, though here the graph is built once and never mutated
// after construction, so no lock is needed post-build).
package neighbours
