package neighbours_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/voxelgrid"
)

func grid3x3(t *testing.T) *voxelgrid.Grid {
	t.Helper()
	var coords []voxelgrid.Coord
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			coords = append(coords, voxelgrid.Coord{X: x, Y: y, Z: 0})
		}
	}
	g, err := voxelgrid.New(coords)
	require.NoError(t, err)
	return g
}

func TestBuild_Dims0DisablesAllNeighbours(t *testing.T) {
	g := grid3x3(t)
	graph, err := neighbours.Build(g, neighbours.Dims0)
	require.NoError(t, err)
	for v := 0; v < g.Len(); v++ {
		n1, err := graph.N1(v)
		require.NoError(t, err)
		assert.Empty(t, n1)
	}
}

func TestBuild_Dims2_CentreVoxelHasFourN1AndFourN2(t *testing.T) {
	g := grid3x3(t)
	graph, err := neighbours.Build(g, neighbours.Dims2)
	require.NoError(t, err)

	centre, ok := g.IndexOf(voxelgrid.Coord{X: 1, Y: 1, Z: 0})
	require.True(t, ok)

	n1, err := graph.N1(centre)
	require.NoError(t, err)
	assert.Len(t, n1, 4) // N, S, E, W

	n2, err := graph.N2(centre)
	require.NoError(t, err)
	assert.Len(t, n2, 4) // four diagonals
}

func TestBuild_CornerVoxelHasFewerNeighbours(t *testing.T) {
	g := grid3x3(t)
	graph, err := neighbours.Build(g, neighbours.Dims2)
	require.NoError(t, err)

	corner, ok := g.IndexOf(voxelgrid.Coord{X: 0, Y: 0, Z: 0})
	require.True(t, ok)

	n1, err := graph.N1(corner)
	require.NoError(t, err)
	assert.Len(t, n1, 2)

	n2, err := graph.N2(corner)
	require.NoError(t, err)
	assert.Len(t, n2, 1)
}

// Neighbour symmetry (spec §8): u in N1(v) iff v in N1(u), for every
// voxel pair.
func TestBuild_N1IsSymmetric(t *testing.T) {
	g := grid3x3(t)
	graph, err := neighbours.Build(g, neighbours.Dims2)
	require.NoError(t, err)

	for v := 0; v < g.Len(); v++ {
		n1, err := graph.N1(v)
		require.NoError(t, err)
		for _, u := range n1 {
			back, err := graph.N1(u)
			require.NoError(t, err)
			assert.Contains(t, back, v)
		}
	}
}

func TestBuild_Dims3_InteriorVoxelHasSixN1(t *testing.T) {
	var coords []voxelgrid.Coord
	for z := 0; z < 3; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				coords = append(coords, voxelgrid.Coord{X: x, Y: y, Z: z})
			}
		}
	}
	g, err := voxelgrid.New(coords)
	require.NoError(t, err)

	graph, err := neighbours.Build(g, neighbours.Dims3)
	require.NoError(t, err)

	centre, ok := g.IndexOf(voxelgrid.Coord{X: 1, Y: 1, Z: 1})
	require.True(t, ok)
	n1, err := graph.N1(centre)
	require.NoError(t, err)
	assert.Len(t, n1, 6)
}

func TestBuild_RejectsInvalidSpatialDims(t *testing.T) {
	g := grid3x3(t)
	_, err := neighbours.Build(g, neighbours.SpatialDims(1))
	assert.ErrorIs(t, err, neighbours.ErrInvalidSpatialDims)
}

func TestN1_IndexOutOfRange(t *testing.T) {
	g := grid3x3(t)
	graph, err := neighbours.Build(g, neighbours.Dims2)
	require.NoError(t, err)
	_, err = graph.N1(100)
	assert.ErrorIs(t, err, neighbours.ErrIndexOutOfRange)
}
