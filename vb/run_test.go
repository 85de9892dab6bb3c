package vb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/internal/runerr"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/vb"
)

func trivialConfig(t *testing.T) vb.Config {
	t.Helper()
	model := fwdmodel.NewTrivial(20, 0, 100)
	ident, err := transform.Lookup("identity")
	require.NoError(t, err)

	pp := prior.ParameterPrior{Variants: []prior.Prior{prior.Normal{Mu: 0, Sigma2: 100}}}

	return vb.Config{
		Model:      model,
		Transforms: []transform.Transform{ident},
		Priors:     []prior.ParameterPrior{pp},
		NewNoise:   func() noise.Posterior { return noise.NewWhite(1e-6, 1e6) },
	}
}

func constantData(t *testing.T, n int, value float64) []float64 {
	t.Helper()
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestRun_TrivialModelConvergesToDataMean(t *testing.T) {
	cfg := trivialConfig(t)
	state, err := vb.Init(cfg)
	require.NoError(t, err)

	y := constantData(t, 20, 3.0)
	priorInputs := []prior.Inputs{{}}
	monitor := convergence.NewTrialMode(1e-6, 50, 10)

	err = vb.Run(cfg, state, y, priorInputs, monitor, runerr.Voxel{Index: 0}, runlog.Noop{})
	require.NoError(t, err)

	mean := state.Posterior.Mean()
	assert.InDelta(t, 3.0, mean[0], 0.1)
	assert.False(t, state.Failed)
}

func TestRun_RejectsDimensionMismatch(t *testing.T) {
	cfg := trivialConfig(t)
	state, err := vb.Init(cfg)
	require.NoError(t, err)

	monitor := convergence.NewTrialMode(1e-6, 50, 10)
	err = vb.Run(cfg, state, []float64{1, 2}, []prior.Inputs{{}}, monitor, runerr.Voxel{Index: 0}, runlog.Noop{})
	assert.ErrorIs(t, err, vb.ErrDimensionMismatch)
}

func TestRun_FreeEnergyIsFiniteAtConvergence(t *testing.T) {
	cfg := trivialConfig(t)
	state, err := vb.Init(cfg)
	require.NoError(t, err)

	y := constantData(t, 20, -2.0)
	monitor := convergence.NewTrialMode(1e-6, 50, 10)
	err = vb.Run(cfg, state, y, []prior.Inputs{{}}, monitor, runerr.Voxel{Index: 0}, runlog.Noop{})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(state.FreeEnergy))
	assert.False(t, math.IsInf(state.FreeEnergy, 0))
}

func TestInit_RejectsDimensionMismatch(t *testing.T) {
	cfg := trivialConfig(t)
	cfg.Transforms = nil
	_, err := vb.Init(cfg)
	assert.ErrorIs(t, err, vb.ErrDimensionMismatch)
}
