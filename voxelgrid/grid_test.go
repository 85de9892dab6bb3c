package voxelgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/voxelgrid"
)

func TestNew_AssignsIndicesInGivenOrder(t *testing.T) {
	g, err := voxelgrid.New([]voxelgrid.Coord{{X: 2, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	idx, ok := g.IndexOf(voxelgrid.Coord{X: 0, Y: 0, Z: 0})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := voxelgrid.New(nil)
	assert.ErrorIs(t, err, voxelgrid.ErrEmptyGrid)
}

func TestNew_RejectsDuplicateCoord(t *testing.T) {
	c := voxelgrid.Coord{X: 1, Y: 1, Z: 1}
	_, err := voxelgrid.New([]voxelgrid.Coord{c, c})
	assert.ErrorIs(t, err, voxelgrid.ErrDuplicateCoord)
}

func TestFromMask_SelectsPositiveValuesInRowMajorOrder(t *testing.T) {
	// 2x2x1 volume, row-major x-fastest: indices 0,1,2,3 -> (0,0),(1,0),(0,1),(1,1)
	mask := []float64{1, 0, 0, 1}
	g, err := voxelgrid.FromMask(mask, 2, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	c0, err := g.Coord(0)
	require.NoError(t, err)
	assert.Equal(t, voxelgrid.Coord{X: 0, Y: 0, Z: 0}, c0)
	c1, err := g.Coord(1)
	require.NoError(t, err)
	assert.Equal(t, voxelgrid.Coord{X: 1, Y: 1, Z: 0}, c1)
}

func TestFromMask_RejectsDimensionMismatch(t *testing.T) {
	_, err := voxelgrid.FromMask([]float64{1, 2, 3}, 2, 2, 1)
	assert.ErrorIs(t, err, voxelgrid.ErrDimensionMismatch)
}

func TestFromMask_RejectsAllZeroMask(t *testing.T) {
	_, err := voxelgrid.FromMask([]float64{0, 0, 0, 0}, 2, 2, 1)
	assert.ErrorIs(t, err, voxelgrid.ErrEmptyGrid)
}

func TestCoord_OutOfRange(t *testing.T) {
	g, err := voxelgrid.New([]voxelgrid.Coord{{X: 0, Y: 0, Z: 0}})
	require.NoError(t, err)
	_, err = g.Coord(5)
	assert.ErrorIs(t, err, voxelgrid.ErrIndexOutOfRange)
}
