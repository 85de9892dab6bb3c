package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/dataio"
)

// writeTrivialFixture writes a one-voxel mask and a noise-free constant
// data volume, returning their paths.
func writeTrivialFixture(t *testing.T, dir string) (maskPath, dataPath string) {
	t.Helper()
	codec := dataio.FlatCodec{}

	maskPath = filepath.Join(dir, "mask.flt")
	require.NoError(t, codec.WriteVolume(maskPath, &dataio.Volume{
		DimX: 1, DimY: 1, DimZ: 1, DimT: 1,
		Data: []float32{1},
	}))

	const numT = 5
	data := make([]float32, numT)
	for i := range data {
		data[i] = 3.0
	}
	dataPath = filepath.Join(dir, "data.flt")
	require.NoError(t, codec.WriteVolume(dataPath, &dataio.Volume{
		DimX: 1, DimY: 1, DimZ: 1, DimT: numT,
		Data: data,
	}))
	return maskPath, dataPath
}

func TestRunE_OutputDirectoryCollision_SuffixesWithPlus(t *testing.T) {
	dir := t.TempDir()
	maskPath, dataPath := writeTrivialFixture(t, dir)
	outDir := filepath.Join(dir, "foo")

	args := []string{
		"--model=trivial", "--method=vb",
		"--mask=" + maskPath, "--data=" + dataPath,
		"--output=" + outDir,
	}

	require.Equal(t, 0, run(args))
	_, err := os.Stat(outDir)
	require.NoError(t, err)

	require.Equal(t, 0, run(args))
	_, err = os.Stat(outDir + "+")
	assert.NoError(t, err, "second run to the same --output should suffix with one +")

	require.Equal(t, 0, run(args))
	_, err = os.Stat(outDir + "++")
	assert.NoError(t, err, "third run to the same --output should suffix with two +")
}

func TestRunE_OutputDirectoryOverwrite_ReusesSameDirectory(t *testing.T) {
	dir := t.TempDir()
	maskPath, dataPath := writeTrivialFixture(t, dir)
	outDir := filepath.Join(dir, "bar")

	args := []string{
		"--model=trivial", "--method=vb",
		"--mask=" + maskPath, "--data=" + dataPath,
		"--output=" + outDir, "--overwrite",
	}

	require.Equal(t, 0, run(args))
	require.Equal(t, 0, run(args))

	_, err := os.Stat(outDir + "+")
	assert.True(t, os.IsNotExist(err), "--overwrite must never suffix the output directory")

	meanPath := filepath.Join(outDir, "mean_mean")
	_, err = os.Stat(meanPath)
	assert.NoError(t, err, "expected mean_mean output volume to be written")
}
