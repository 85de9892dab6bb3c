package voxelgrid

import "fmt"

// New builds a Grid from an explicit list of voxel coordinates, in the
// order given (this order becomes each voxel's index). Returns
// ErrEmptyGrid if coords is empty, ErrDuplicateCoord if two entries
// repeat the same (x,y,z).
func New(coords []Coord) (*Grid, error) {
	if len(coords) == 0 {
		return nil, ErrEmptyGrid
	}
	index := make(map[Coord]int, len(coords))
	for i, c := range coords {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("voxelgrid: New: coord %v at index %d: %w", c, i, ErrDuplicateCoord)
		}
		index[c] = i
	}
	out := make([]Coord, len(coords))
	copy(out, coords)

	return &Grid{coords: out, index: index}, nil
}

// FromMask builds a Grid from a row-major flattened mask volume of size
// dimX*dimY*dimZ: voxels with mask[i] > 0 are active, in row-major
// (x fastest, then y, then z) scan order, matching spec §3's
// "voxel-mask volume selects voxels with value > 0".
func FromMask(mask []float64, dimX, dimY, dimZ int) (*Grid, error) {
	if dimX <= 0 || dimY <= 0 || dimZ <= 0 {
		return nil, ErrNonPositiveDims
	}
	want := dimX * dimY * dimZ
	if len(mask) != want {
		return nil, fmt.Errorf("voxelgrid: FromMask: got %d samples, want %d: %w", len(mask), want, ErrDimensionMismatch)
	}

	coords := make([]Coord, 0, want)
	idx := 0
	for z := 0; z < dimZ; z++ {
		for y := 0; y < dimY; y++ {
			for x := 0; x < dimX; x++ {
				if mask[idx] > 0 {
					coords = append(coords, Coord{X: x, Y: y, Z: z})
				}
				idx++
			}
		}
	}
	if len(coords) == 0 {
		return nil, ErrEmptyGrid
	}

	index := make(map[Coord]int, len(coords))
	for i, c := range coords {
		index[c] = i
	}

	return &Grid{coords: coords, index: index}, nil
}

// Len returns the number of active voxels V.
func (g *Grid) Len() int {
	return len(g.coords)
}

// Coord returns the lattice coordinate of voxel v.
func (g *Grid) Coord(v int) (Coord, error) {
	if v < 0 || v >= len(g.coords) {
		return Coord{}, ErrIndexOutOfRange
	}
	return g.coords[v], nil
}

// IndexOf returns the voxel index for coordinate c, and false if c is
// not an active voxel in this grid.
func (g *Grid) IndexOf(c Coord) (int, bool) {
	v, ok := g.index[c]
	return v, ok
}

// Coords returns a defensive copy of every voxel's coordinate, indexed
// by voxel number.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, len(g.coords))
	copy(out, g.coords)
	return out
}
