package voxelgrid

// Coord is an integer lattice coordinate (x,y,z) of a voxel within the
// original volume's bounding box. A 2D run simply fixes Z=0 throughout.
type Coord struct {
	X, Y, Z int
}

// Grid is the immutable set of active voxels for a run: their
// coordinates, in the order assigned at construction, plus the reverse
// lookup from Coord to voxel index used by neighbours.Graph.
type Grid struct {
	coords []Coord
	index  map[Coord]int
}
