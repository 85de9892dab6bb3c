package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/testutil"
)

func TestGridXY_RowMajorOrder(t *testing.T) {
	grid, err := testutil.GridXY(2, 3)
	require.NoError(t, err)
	require.Equal(t, 6, grid.Len())

	c1, err := grid.Coord(1)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.X)
	assert.Equal(t, 0, c1.Y)

	c3, err := grid.Coord(3)
	require.NoError(t, err)
	assert.Equal(t, 0, c3.X)
	assert.Equal(t, 1, c3.Y)
}

func TestGridXYZ_Count(t *testing.T) {
	grid, err := testutil.GridXYZ(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 8, grid.Len())
}

func TestConstantTimeseries(t *testing.T) {
	series := testutil.ConstantTimeseries([]float64{1, 2, 3}, 4)
	require.Len(t, series, 3)
	for i, s := range series {
		require.Len(t, s, 4)
		for _, v := range s {
			assert.Equal(t, float64(i+1), v)
		}
	}
}

func TestNoisyTimeseries_DeterministicWithSeed(t *testing.T) {
	a := testutil.NoisyTimeseries([]float64{0, 0}, 10, 1.0, testutil.WithSeed(42))
	b := testutil.NoisyTimeseries([]float64{0, 0}, 10, 1.0, testutil.WithSeed(42))
	assert.Equal(t, a, b)
}

func TestNoisyTimeseries_NoSeedIsExactlyConstant(t *testing.T) {
	series := testutil.NoisyTimeseries([]float64{5}, 3, 2.0)
	assert.Equal(t, [][]float64{{5, 5, 5}}, series)
}
