package neighbours

import (
	"fmt"

	"github.com/fabber-go/fabber/voxelgrid"
)

// Build constructs the neighbour Graph for grid under the given
// spatial_dims setting. Complexity: O(V * offsets) time, O(V) extra
// memory beyond the ragged index slices themselves.
func Build(grid *voxelgrid.Grid, dims SpatialDims) (*Graph, error) {
	offsets1, offsets2, err := latticeOffsets(dims)
	if err != nil {
		return nil, fmt.Errorf("neighbours: Build: %w", err)
	}

	v := grid.Len()
	n1 := make([][]int, v)
	n2 := make([][]int, v)
	if dims == Dims0 {
		for i := range n1 {
			n1[i] = []int{}
			n2[i] = []int{}
		}
		return &Graph{n1: n1, n2: n2}, nil
	}

	for i := 0; i < v; i++ {
		c, err := grid.Coord(i)
		if err != nil {
			return nil, fmt.Errorf("neighbours: Build: %w", err)
		}
		n1[i] = gatherNeighbours(grid, c, offsets1)
		n2[i] = gatherNeighbours(grid, c, offsets2)
	}

	return &Graph{n1: n1, n2: n2}, nil
}

func gatherNeighbours(grid *voxelgrid.Grid, c voxelgrid.Coord, offsets [][3]int) []int {
	out := make([]int, 0, len(offsets))
	for _, d := range offsets {
		neighbourCoord := voxelgrid.Coord{X: c.X + d[0], Y: c.Y + d[1], Z: c.Z + d[2]}
		if idx, ok := grid.IndexOf(neighbourCoord); ok {
			out = append(out, idx)
		}
	}
	return out
}

// latticeOffsets enumerates every nonzero offset vector over the active
// axes with components in {-1,0,1}, splitting them into first-order
// (exactly one nonzero axis: an axis-aligned unit step) and second-order
// (two or three nonzero axes: a diagonal step).
func latticeOffsets(dims SpatialDims) (offsets1, offsets2 [][3]int, err error) {
	var axes []int
	switch dims {
	case Dims0:
		return nil, nil, nil
	case Dims2:
		axes = []int{0, 1}
	case Dims3:
		axes = []int{0, 1, 2}
	default:
		return nil, nil, ErrInvalidSpatialDims
	}

	steps := []int{-1, 0, 1}
	for _, dx := range steps {
		for _, dy := range steps {
			for _, dz := range steps {
				var d [3]int
				if contains(axes, 0) {
					d[0] = dx
				}
				if contains(axes, 1) {
					d[1] = dy
				}
				if contains(axes, 2) {
					d[2] = dz
				}

				nonzero := 0
				for _, v := range d {
					if v != 0 {
						nonzero++
					}
				}
				switch nonzero {
				case 0:
					continue
				case 1:
					offsets1 = append(offsets1, d)
				default:
					offsets2 = append(offsets2, d)
				}
			}
		}
	}
	return dedupe3(offsets1), dedupe3(offsets2), nil
}

func contains(axes []int, axis int) bool {
	for _, a := range axes {
		if a == axis {
			return true
		}
	}
	return false
}

// dedupe3 removes duplicate offset vectors; the triple-nested loop in
// latticeOffsets naturally revisits the same (0-padded) offset multiple
// times once an axis is inactive, so the raw slice can contain repeats.
func dedupe3(in [][3]int) [][3]int {
	seen := make(map[[3]int]bool, len(in))
	out := make([][3]int, 0, len(in))
	for _, d := range in {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// N1 returns the first-order (axis-aligned unit step) neighbour voxel
// indices of voxel v.
func (g *Graph) N1(v int) ([]int, error) {
	if v < 0 || v >= len(g.n1) {
		return nil, ErrIndexOutOfRange
	}
	return g.n1[v], nil
}

// N2 returns the second-order (diagonal step) neighbour voxel indices
// of voxel v.
func (g *Graph) N2(v int) ([]int, error) {
	if v < 0 || v >= len(g.n2) {
		return nil, ErrIndexOutOfRange
	}
	return g.n2[v], nil
}

// Len returns the number of voxels this Graph was built over.
func (g *Graph) Len() int {
	return len(g.n1)
}
