package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabber-go/fabber/transform"
)

// TestRoundTrip locks in spec §8's transform round-trip invariant.
func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		t    transform.Transform
		tol  float64
		xs   []float64
	}{
		{"identity", transform.Identity{}, 1e-12, []float64{-5, 0, 3.14, 1e6}},
		{"log", transform.Log{}, 1e-10, []float64{-5, -0.5, 0, 0.5, 5}},
		{"softplus", transform.Softplus{}, 1e-8, []float64{-20, -5, -0.1, 0, 0.1, 5, 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, x := range c.xs {
				got := c.t.ToFabber(c.t.ToModel(x))
				assert.InDelta(t, x, got, c.tol)
			}
		})
	}
}

func TestSoftplus_PositiveModelSpace(t *testing.T) {
	sp := transform.Softplus{}
	for _, x := range []float64{-50, -10, 0, 10, 50} {
		y := sp.ToModel(x)
		assert.GreaterOrEqual(t, y, 0.0)
	}
}

func TestLookup(t *testing.T) {
	tr, err := transform.Lookup("log")
	require.NoError(t, err)
	assert.Equal(t, "log", tr.Name())

	_, err = transform.Lookup("nonexistent")
	assert.ErrorIs(t, err, transform.ErrUnknownTransform)
}

func TestModelParams_DeltaMethod(t *testing.T) {
	// For identity, delta method is exact: var passes through unchanged.
	d := transform.DistParams{Mean: 2, Var: 3}
	out := transform.ModelParams(transform.Identity{}, d)
	assert.Equal(t, d, out)
}

func TestFabberParams_InverseOfModelParams_ForIdentity(t *testing.T) {
	d := transform.DistParams{Mean: 2, Var: 3}
	model := transform.ModelParams(transform.Identity{}, d)
	back := transform.FabberParams(transform.Identity{}, model)
	assert.InDelta(t, d.Mean, back.Mean, 1e-9)
	assert.InDelta(t, d.Var, back.Var, 1e-9)
}
