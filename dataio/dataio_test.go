package dataio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/dataio"
	"github.com/fabber-go/fabber/voxelgrid"
)

func TestFlatCodec_RoundTrip(t *testing.T) {
	v := &dataio.Volume{
		DimX: 2, DimY: 2, DimZ: 1, DimT: 3,
		Data: make([]float32, 2*2*1*3),
	}
	for i := range v.Data {
		v.Data[i] = float32(i)
	}

	path := filepath.Join(t.TempDir(), "vol.flat")
	var codec dataio.FlatCodec
	require.NoError(t, codec.WriteVolume(path, v))

	got, err := codec.ReadVolume(path)
	require.NoError(t, err)
	assert.Equal(t, v.DimX, got.DimX)
	assert.Equal(t, v.DimY, got.DimY)
	assert.Equal(t, v.DimZ, got.DimZ)
	assert.Equal(t, v.DimT, got.DimT)
	assert.Equal(t, v.Data, got.Data)
}

func TestFlatCodec_ReadVolume_RejectsTruncatedFile(t *testing.T) {
	bad := &dataio.Volume{DimX: 2, DimY: 2, DimZ: 1, DimT: 1, Data: []float32{1, 2, 3, 4}}
	path := filepath.Join(t.TempDir(), "bad.flat")
	var codec dataio.FlatCodec
	require.NoError(t, codec.WriteVolume(path, bad))

	// Header (16 bytes) plus fewer than 4 float32 samples (16 bytes): truncate mid-data.
	require.NoError(t, os.Truncate(path, 16+8))

	_, err := codec.ReadVolume(path)
	require.Error(t, err)
}

func TestVolume_ExtractTimeseries(t *testing.T) {
	v := &dataio.Volume{
		DimX: 2, DimY: 1, DimZ: 1, DimT: 2,
		Data: []float32{10, 20, 11, 21}, // t=0: [10,20], t=1: [11,21]
	}
	grid, err := voxelgrid.New([]voxelgrid.Coord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	require.NoError(t, err)

	series, err := v.ExtractTimeseries(grid)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11}, series[0])
	assert.Equal(t, []float64{20, 21}, series[1])
}

func TestVolume_ExtractTimeseries_RejectsDimensionMismatch(t *testing.T) {
	v := &dataio.Volume{DimX: 2, DimY: 1, DimZ: 1, DimT: 2, Data: []float32{1, 2, 3}}
	grid, err := voxelgrid.New([]voxelgrid.Coord{{X: 0, Y: 0, Z: 0}})
	require.NoError(t, err)

	_, err = v.ExtractTimeseries(grid)
	assert.ErrorIs(t, err, dataio.ErrDimensionMismatch)
}
