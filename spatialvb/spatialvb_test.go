package spatialvb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/covcache"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/spatialvb"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/voxelgrid"
)

func twoVoxelGrid(t *testing.T) *voxelgrid.Grid {
	t.Helper()
	grid, err := voxelgrid.New([]voxelgrid.Coord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	require.NoError(t, err)
	return grid
}

func baseConfig(t *testing.T, grid *voxelgrid.Grid, spatial bool) spatialvb.Config {
	t.Helper()
	ident, err := transform.Lookup("identity")
	require.NoError(t, err)

	variants := []prior.Prior{prior.Normal{Mu: 0, Sigma2: 100}}
	if spatial {
		variants = append(variants, prior.SpatialM{})
	}

	return spatialvb.Config{
		Grid:            grid,
		SpatialDims:     neighbours.Dims3,
		Metric:          covcache.Euclidean,
		Model:           fwdmodel.NewTrivial(20, 0, 100),
		Transforms:      []transform.Transform{ident},
		Priors:          []prior.ParameterPrior{{Variants: variants}},
		NewNoise:        func() noise.Posterior { return noise.NewWhite(1e-6, 1e6) },
		InnerPolicy:     convergence.PolicyTrialMode,
		InnerTolerance:  1e-6,
		InnerMaxIters:   50,
		InnerMaxTrials:  10,
		UpdateFirstIter: true,
		SpatialSpeed:    -1,
		MaxOuterIters:   15,
		OuterTolerance:  1e-4,
		Concurrency:     2,
	}
}

func TestRun_TwoVoxelSpatialMConverges(t *testing.T) {
	grid := twoVoxelGrid(t)
	cfg := baseConfig(t, grid, true)

	co, err := spatialvb.New(cfg)
	require.NoError(t, err)

	data := [][]float64{
		constData(20, 3.0),
		constData(20, 3.2),
	}

	result, err := co.Run(context.Background(), data)
	require.NoError(t, err)
	require.Empty(t, result.Failed)

	for _, s := range result.States {
		mean := s.Posterior.Mean()
		assert.InDelta(t, 3.1, mean[0], 0.3)
	}
}

func TestRun_NonSpatialIndependentVoxelsConverge(t *testing.T) {
	grid := twoVoxelGrid(t)
	cfg := baseConfig(t, grid, false)

	co, err := spatialvb.New(cfg)
	require.NoError(t, err)

	data := [][]float64{
		constData(20, 5.0),
		constData(20, -5.0),
	}

	result, err := co.Run(context.Background(), data)
	require.NoError(t, err)
	require.Empty(t, result.Failed)

	assert.InDelta(t, 5.0, result.States[0].Posterior.Mean()[0], 0.2)
	assert.InDelta(t, -5.0, result.States[1].Posterior.Mean()[0], 0.2)
}

func TestRun_ImagePriorPullsTowardExternalValue(t *testing.T) {
	grid := twoVoxelGrid(t)
	cfg := baseConfig(t, grid, false)
	cfg.Priors = []prior.ParameterPrior{{Variants: []prior.Prior{prior.Image{Sigma2: 1e-4}}}}
	cfg.ImageValues = [][]float64{{2.0, 2.0}}

	co, err := spatialvb.New(cfg)
	require.NoError(t, err)

	data := [][]float64{constData(20, 0.0), constData(20, 0.0)}
	result, err := co.Run(context.Background(), data)
	require.NoError(t, err)
	require.Empty(t, result.Failed)

	// The posterior mean is a precision-weighted average of the
	// data-implied estimate (0) and the image prior's mean (2.0), so it
	// must land strictly between them.
	for _, s := range result.States {
		mean := s.Posterior.Mean()[0]
		assert.Greater(t, mean, 0.0)
		assert.Less(t, mean, 2.0)
	}
}

func TestNew_RejectsEmptyGrid(t *testing.T) {
	_, err := spatialvb.New(spatialvb.Config{Model: fwdmodel.NewTrivial(20, 0, 100)})
	assert.ErrorIs(t, err, spatialvb.ErrNoVoxels)
}

func constData(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
