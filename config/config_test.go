package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/config"
)

func TestParse_BasicSingleFile(t *testing.T) {
	opts, err := config.Parse([]string{
		"--model=linear", "--method=vb", "--data=data.nii", "--output=out",
	})
	require.NoError(t, err)
	assert.Equal(t, "linear", opts.Model)
	assert.Equal(t, "vb", opts.Method)
	assert.Equal(t, []string{"data.nii"}, opts.DataFiles)
	assert.Equal(t, config.SingleFile, opts.DataOrder)
	assert.Equal(t, "out", opts.Output)
}

func TestParse_MultiFileDefaultsToInterleave(t *testing.T) {
	opts, err := config.Parse([]string{
		"--model=linear", "--method=vb", "--output=out",
		"--data1=a.nii", "--data2=b.nii",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nii", "b.nii"}, opts.DataFiles)
	assert.Equal(t, config.Interleave, opts.DataOrder)
}

func TestParse_ExplicitDataOrder(t *testing.T) {
	opts, err := config.Parse([]string{
		"--model=linear", "--method=vb", "--output=out",
		"--data1=a.nii", "--data2=b.nii", "--data-order=concatenate",
	})
	require.NoError(t, err)
	assert.Equal(t, config.Concatenate, opts.DataOrder)
}

func TestParse_UnknownFlagsPassThroughToRaw(t *testing.T) {
	opts, err := config.Parse([]string{
		"--model=poly", "--method=vb", "--data=data.nii", "--output=out",
		"--poly-degree=3", "--save-mean",
	})
	require.NoError(t, err)
	assert.Equal(t, "3", opts.Raw["poly-degree"])
	assert.True(t, opts.Bool("save-mean"))
}

func TestParse_MissingModelErrors(t *testing.T) {
	_, err := config.Parse([]string{"--method=vb", "--data=data.nii"})
	assert.ErrorIs(t, err, config.ErrMissingModel)
}

func TestParse_HelpSkipsRequiredOptionValidation(t *testing.T) {
	opts, err := config.Parse([]string{"--help", "--method=vb"})
	require.NoError(t, err)
	assert.True(t, opts.Help)
}

func TestParse_OptionFileIsSpliced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.txt")
	require.NoError(t, os.WriteFile(path, []byte("# a comment\n--model=linear\n--method=vb  \n\n"), 0o644))

	opts, err := config.Parse([]string{"-f", path, "--data=data.nii", "--output=out"})
	require.NoError(t, err)
	assert.Equal(t, "linear", opts.Model)
	assert.Equal(t, "vb", opts.Method)
}

func TestParse_LegacyOptionFileForbidsNesting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.txt")
	require.NoError(t, os.WriteFile(path, []byte("--model=linear -@ other.txt"), 0o644))

	_, err := config.Parse([]string{"-@", path})
	assert.ErrorIs(t, err, config.ErrNestedOptionFile)
}

func TestResolveOutputDir_SuffixesOnCollision(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	first, err := config.ResolveOutputDir(base, false)
	require.NoError(t, err)
	assert.Equal(t, base, first)

	second, err := config.ResolveOutputDir(base, false)
	require.NoError(t, err)
	assert.Equal(t, base+"+", second)
}

func TestResolveOutputDir_OverwriteReusesExisting(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")
	require.NoError(t, os.Mkdir(base, 0o755))

	got, err := config.ResolveOutputDir(base, true)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}
