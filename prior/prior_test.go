package prior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/prior"
)

func TestNormal_Contribution(t *testing.T) {
	n := prior.Normal{Mu: 2, Sigma2: 0.5}
	c, err := n.Contribution(prior.Inputs{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Mu0)
	assert.Equal(t, 2.0, c.Lambda0)
}

func TestARD_Contribution(t *testing.T) {
	a := prior.ARD{}
	c, err := a.Contribution(prior.Inputs{PosteriorMean: 1, PosteriorVar: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Mu0)
	assert.InDelta(t, 0.5, c.Lambda0, 1e-12)
}

func TestARD_DegenerateDenominator(t *testing.T) {
	a := prior.ARD{}
	_, err := a.Contribution(prior.Inputs{PosteriorMean: 0, PosteriorVar: 0})
	assert.ErrorIs(t, err, prior.ErrDegenerateARD)
}

func TestSpatialM_MeanOfNeighbours(t *testing.T) {
	sm := prior.SpatialM{}
	c, err := sm.Contribution(prior.Inputs{
		NeighbourMeans: []float64{1, 2, 3},
		NeighbourCount: 3,
		Rho:            2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, c.Mu0, 1e-12)
	assert.InDelta(t, 6.0, c.Lambda0, 1e-12)
}

func TestSpatialm_UsesExpectedCount(t *testing.T) {
	sm := prior.Spatialm{}
	c, err := sm.Contribution(prior.Inputs{
		NeighbourMeans:         []float64{1, 3},
		NeighbourCount:         2,
		ExpectedNeighbourCount: 6,
		Rho:                    1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, c.Mu0, 1e-12)
	assert.InDelta(t, 6.0, c.Lambda0, 1e-12)
}

func TestSpatialP_CARContribution(t *testing.T) {
	sp := prior.SpatialP{}
	// KRow as an identity row: voxel 1 has no coupling to others, so
	// conditional mean should be zero and precision = Rho*KRow[1].
	c, err := sp.Contribution(prior.Inputs{
		VoxelIndex:        1,
		KRow:              []float64{0, 1, 0},
		AllPosteriorMeans: []float64{5, 0, 7},
		Rho:               2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, c.Mu0, 1e-12)
	assert.InDelta(t, 2.0, c.Lambda0, 1e-12)
}

func TestSpatialp_SharesSpatialPMath(t *testing.T) {
	sp := prior.Spatialp{}
	assert.Equal(t, prior.KindSpatialp, sp.Kind())
	c, err := sp.Contribution(prior.Inputs{
		VoxelIndex:        0,
		KRow:              []float64{2, 0.5},
		AllPosteriorMeans: []float64{0, 4},
		Rho:               1,
	})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.Mu0, 1e-12)
}

func TestKindFromChar(t *testing.T) {
	k, err := prior.KindFromChar('M')
	require.NoError(t, err)
	assert.Equal(t, prior.KindSpatialM, k)
	assert.True(t, k.IsSpatial())

	_, err = prior.KindFromChar('?')
	assert.ErrorIs(t, err, prior.ErrUnknownKindChar)
}

func TestParameterPrior_Combine_PrecisionWeighted(t *testing.T) {
	pp := prior.ParameterPrior{Variants: []prior.Prior{
		prior.Normal{Mu: 0, Sigma2: 1}, // lambda=1, mu=0
		prior.Image{Sigma2: 0.5},       // lambda=2, mu=image value
	}}
	c, err := pp.Combine(prior.Inputs{ImageValue: 3})
	require.NoError(t, err)
	// precision-weighted mean: (1*0 + 2*3)/(1+2) = 2
	assert.InDelta(t, 2.0, c.Mu0, 1e-12)
	assert.InDelta(t, 3.0, c.Lambda0, 1e-12)
}

func TestParameterPrior_Combine_SpatialOverridesARD(t *testing.T) {
	pp := prior.ParameterPrior{Variants: []prior.Prior{
		prior.ARD{},
		prior.SpatialM{},
	}}
	in := prior.Inputs{
		PosteriorMean:  10, // would dominate ARD's contribution if not skipped
		PosteriorVar:   0.01,
		NeighbourMeans: []float64{1, 1},
		NeighbourCount: 2,
		Rho:            1,
	}
	c, err := pp.Combine(in)
	require.NoError(t, err)
	// Only SpatialM contributes: mu0=1, lambda0=2.
	assert.InDelta(t, 1.0, c.Mu0, 1e-9)
	assert.InDelta(t, 2.0, c.Lambda0, 1e-9)
}

func TestParameterPrior_Combine_NoContribution(t *testing.T) {
	pp := prior.ParameterPrior{Variants: []prior.Prior{prior.SpatialM{}}}
	_, err := pp.Combine(prior.Inputs{NeighbourMeans: nil})
	assert.ErrorIs(t, err, prior.ErrNoContribution)
}
