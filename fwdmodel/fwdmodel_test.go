package fwdmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/transform"
)

func TestTrivial_EvaluateAndJacobian(t *testing.T) {
	m := fwdmodel.NewTrivial(5, 0, 1e6)
	y, err := m.Evaluate([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3, 3, 3}, y)

	jac, err := m.Jacobian([]float64{3})
	require.NoError(t, err)
	r, c := jac.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 1, c)
	for i := 0; i < r; i++ {
		assert.Equal(t, 1.0, jac.At(i, 0))
	}
}

func TestPolynomial_MatchesClosedForm(t *testing.T) {
	// y = 3 + 2t - t^2 for t=1..10, spec §8 scenario 2.
	m := fwdmodel.NewPolynomial(2, 10)
	y, err := m.Evaluate([]float64{3, 2, -1})
	require.NoError(t, err)
	for i, t64 := range y {
		tt := float64(i + 1)
		want := 3 + 2*tt - tt*tt
		assert.InDelta(t, want, t64, 1e-9)
	}
}

func TestPolynomial_NumericalJacobianMatchesAnalytic(t *testing.T) {
	m := fwdmodel.NewPolynomial(2, 6)
	theta := []float64{1, 2, 3}
	analytic, err := m.Jacobian(theta)
	require.NoError(t, err)

	numeric := mat.NewDense(6, 3, nil)
	err = fwdmodel.NumericalJacobian(numeric, m.Evaluate, theta)
	require.NoError(t, err)

	r, c := analytic.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, analytic.At(i, j), numeric.At(i, j), 1e-4)
		}
	}
}

func TestLinear_EvaluateMatchesDesignTimesTheta(t *testing.T) {
	design := mat.NewDense(3, 2, []float64{1, 0, 1, 1, 1, 2})
	m, err := fwdmodel.NewLinear(design, []string{"a", "b"}, []transform.DistParams{{Var: 1e6}, {Var: 1e6}})
	require.NoError(t, err)

	y, err := m.Evaluate([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, y)
}

func TestLinear_RejectsMismatchedMetadata(t *testing.T) {
	design := mat.NewDense(3, 2, nil)
	_, err := fwdmodel.NewLinear(design, []string{"only-one"}, []transform.DistParams{{}})
	assert.ErrorIs(t, err, fwdmodel.ErrInvalidDesign)
}
