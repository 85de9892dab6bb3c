// Package voxelgrid holds the set of active voxels for a run: their
// integer lattice coordinates and the lookup index from coordinate back
// to voxel number, built once from a mask volume (spec §3 "Voxel grid").
// Downstream packages (neighbours, covcache, vb, spatialvb) address
// voxels purely by their 0-based index into the Grid; Grid is the only
// place that knows about (x,y,z).
package voxelgrid
