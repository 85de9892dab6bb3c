package noise_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/noise"
)

func TestWhite_UpdateMovesPrecisionTowardData(t *testing.T) {
	w := noise.NewWhite(1e-6, 1e6) // near-flat Gamma prior
	residual := make([]float64, 10)
	for i := range residual {
		residual[i] = 0.1 // small, consistent residual -> high precision
	}
	err := w.Update(residual, 0)
	require.NoError(t, err)
	assert.Greater(t, w.ExpectedPrecision(), 0.0)
	assert.InDelta(t, 5.000001, w.C, 1e-9) // c0 + T/2 = 1e-6 + 5
}

func TestWhite_FreeEnergyFinite(t *testing.T) {
	w := noise.NewWhite(1, 1)
	residual := []float64{0.1, -0.2, 0.05}
	require.NoError(t, w.Update(residual, 0.01))
	fe, err := w.FreeEnergyContribution(residual, 0.01)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(fe))
	assert.False(t, math.IsInf(fe, 0))
}

func TestWhite_Clone_Independent(t *testing.T) {
	w := noise.NewWhite(1, 1)
	clone := w.Clone().(*noise.White)
	clone.C = 99
	assert.NotEqual(t, w.C, clone.C)
}

func TestAR1_AlphaNearZeroForWhiteNoise(t *testing.T) {
	ar := noise.NewAR1(1e-6, 1e6, 1.0)
	// A (+,+,-,-) pattern's lag-1 products cancel: zero lag-1 autocorrelation.
	residual := []float64{0.1, 0.1, -0.1, -0.1, 0.1, 0.1, -0.1, -0.1, 0.1}
	err := ar.Update(residual, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ar.Alpha, 0.2)
}

func TestAR1_AlphaClampsAndReportsDivergence(t *testing.T) {
	ar := noise.NewAR1(1, 1, 1e6) // very loose alpha prior lets the raw estimate run away
	// Strongly autocorrelated residual pushes the raw alpha estimate near 1.
	residual := make([]float64, 20)
	residual[0] = 1
	for i := 1; i < len(residual); i++ {
		residual[i] = residual[i-1] * 1.05
	}
	err := ar.Update(residual, 0)
	if err != nil {
		assert.ErrorIs(t, err, noise.ErrARDiverged)
		assert.LessOrEqual(t, math.Abs(ar.Alpha), 0.999+1e-9)
	}
}

func TestAR1_ShortResidualSkipsAlphaUpdate(t *testing.T) {
	ar := noise.NewAR1(1, 1, 1.0)
	err := ar.Update([]float64{0.5}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ar.Alpha)
}
