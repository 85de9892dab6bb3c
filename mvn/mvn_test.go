package mvn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/mvn"
)

// TestMVN_CovariancePrecisionRoundTrip locks in spec §8's MVN round-trip
// invariant: for any SPD matrix M, set-covariance then get-precision then
// get-covariance yields M within Cholesky tolerance.
func TestMVN_CovariancePrecisionRoundTrip(t *testing.T) {
	cov := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 3, 0.5,
		0, 0.5, 2,
	})
	m, err := mvn.NewFromCovariance([]float64{0, 0, 0}, cov)
	require.NoError(t, err)

	prec, err := m.Precision()
	require.NoError(t, err)

	round, err := mvn.NewFromPrecision([]float64{0, 0, 0}, prec)
	require.NoError(t, err)

	back, err := round.Covariance()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, cov.At(i, j), back.At(i, j), 1e-8)
		}
	}
}

// asymSym presents a possibly asymmetric Dense as a mat.Symmetric, so
// SetCovariance sees differing off-diagonal entries.
type asymSym struct{ *mat.Dense }

func (a asymSym) SymmetricDim() int { r, _ := a.Dims(); return r }

func TestMVN_SetCovariance_Symmetrizes(t *testing.T) {
	asym := mat.NewDense(2, 2, []float64{1, 0.2, 0.4, 1})
	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	m, err := mvn.NewFromCovariance([]float64{0, 0}, cov)
	require.NoError(t, err)
	require.NoError(t, m.SetCovariance(asymSym{asym}))
	got, err := m.Covariance()
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got.At(0, 1), 1e-12) // (0.2 + 0.4) / 2
	assert.Equal(t, got.At(0, 1), got.At(1, 0))
}

func TestMVN_DimensionMismatch(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	_, err := mvn.NewFromCovariance([]float64{0, 0, 0}, cov)
	assert.ErrorIs(t, err, mvn.ErrDimensionMismatch)
}

func TestMVN_NotPositiveDefinite(t *testing.T) {
	notSPD := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	m, err := mvn.NewFromCovariance([]float64{0, 0}, notSPD)
	require.NoError(t, err)
	_, err = m.Precision()
	assert.ErrorIs(t, err, mvn.ErrNotPositiveDefinite)
}

func TestMVN_ConcatenateIsBlockDiagonal(t *testing.T) {
	a, err := mvn.NewFromCovariance([]float64{1}, mat.NewSymDense(1, []float64{2}))
	require.NoError(t, err)
	b, err := mvn.NewFromCovariance([]float64{2}, mat.NewSymDense(1, []float64{3}))
	require.NoError(t, err)

	joint, err := a.Concatenate(b)
	require.NoError(t, err)
	require.Equal(t, 2, joint.Dim())

	cov, err := joint.Covariance()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 3.0, cov.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, cov.At(0, 1), 1e-12)
	assert.Equal(t, []float64{1, 2}, joint.Mean())
}

func TestMVN_Marginalise(t *testing.T) {
	cov := mat.NewSymDense(3, []float64{
		4, 1, 2,
		1, 3, 0,
		2, 0, 5,
	})
	m, err := mvn.NewFromCovariance([]float64{10, 20, 30}, cov)
	require.NoError(t, err)

	sub, err := m.Marginalise([]int{0, 2})
	require.NoError(t, err)
	require.Equal(t, 2, sub.Dim())
	assert.Equal(t, []float64{10, 30}, sub.Mean())

	subCov, err := sub.Covariance()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, subCov.At(0, 0), 1e-12)
	assert.InDelta(t, 5.0, subCov.At(1, 1), 1e-12)
	assert.InDelta(t, 2.0, subCov.At(0, 1), 1e-12)
}

func TestMVN_KLDivergence_ZeroForIdenticalDistributions(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	a, err := mvn.NewFromCovariance([]float64{0, 0}, cov)
	require.NoError(t, err)
	b, err := mvn.NewFromCovariance([]float64{0, 0}, cov)
	require.NoError(t, err)

	kl, err := a.KLDivergence(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, kl, 1e-9)
}

func TestMVN_KLDivergence_PositiveForDifferentMeans(t *testing.T) {
	cov := mat.NewSymDense(1, []float64{1})
	a, err := mvn.NewFromCovariance([]float64{0}, cov)
	require.NoError(t, err)
	b, err := mvn.NewFromCovariance([]float64{2}, cov)
	require.NoError(t, err)

	kl, err := a.KLDivergence(b)
	require.NoError(t, err)
	assert.Greater(t, kl, 0.0)
}

func TestMVN_Sample_MeanConvergesOverManyDraws(t *testing.T) {
	cov := mat.NewSymDense(1, []float64{0.01})
	m, err := mvn.NewFromCovariance([]float64{5}, cov)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	sum := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		s, err := m.Sample(rng)
		require.NoError(t, err)
		sum += s[0]
	}
	assert.InDelta(t, 5.0, sum/n, 0.05)
}

func TestArena_HandlesAreStable(t *testing.T) {
	arena := mvn.NewArena()
	m1, err := mvn.NewFromCovariance([]float64{1}, mat.NewSymDense(1, []float64{1}))
	require.NoError(t, err)
	m2, err := mvn.NewFromCovariance([]float64{2}, mat.NewSymDense(1, []float64{1}))
	require.NoError(t, err)

	h1 := arena.Add(m1)
	h2 := arena.Add(m2)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, []float64{1}, arena.Get(h1).Mean())
	assert.Equal(t, []float64{2}, arena.Get(h2).Mean())

	arena.Set(h1, m2)
	assert.Equal(t, []float64{2}, arena.Get(h1).Mean())
}
