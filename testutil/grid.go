package testutil

import "github.com/fabber-go/fabber/voxelgrid"

// GridXY returns every (x,y) coordinate of a rows x cols lattice with
// z=0, in row-major order (x fastest, then y).
func GridXY(rows, cols int) (*voxelgrid.Grid, error) {
	coords := make([]voxelgrid.Coord, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			coords = append(coords, voxelgrid.Coord{X: x, Y: y, Z: 0})
		}
	}
	return voxelgrid.New(coords)
}

// GridXYZ returns every (x,y,z) coordinate of a rows x cols x depth
// lattice, in row-major (x fastest, then y, then z) order.
func GridXYZ(rows, cols, depth int) (*voxelgrid.Grid, error) {
	coords := make([]voxelgrid.Coord, 0, rows*cols*depth)
	for z := 0; z < depth; z++ {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				coords = append(coords, voxelgrid.Coord{X: x, Y: y, Z: z})
			}
		}
	}
	return voxelgrid.New(coords)
}
