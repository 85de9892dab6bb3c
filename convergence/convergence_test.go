package convergence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabber-go/fabber/convergence"
)

func TestMaxIters_ConvergesAtCap(t *testing.T) {
	m := convergence.NewMaxIters(3)
	assert.Equal(t, convergence.Continue, m.Check(0))
	assert.Equal(t, convergence.Continue, m.Check(0))
	assert.Equal(t, convergence.Converged, m.Check(0))
}

func TestFChange_ConvergesWhenDeltaBelowTolerance(t *testing.T) {
	m := convergence.NewFChange(1e-3, 100)
	assert.Equal(t, convergence.Continue, m.Check(1.0))
	assert.Equal(t, convergence.Continue, m.Check(1.5))
	assert.Equal(t, convergence.Converged, m.Check(1.5000001))
}

func TestFChange_StopsAtMaxItersEvenIfStillMoving(t *testing.T) {
	m := convergence.NewFChange(1e-9, 2)
	assert.Equal(t, convergence.Continue, m.Check(1.0))
	assert.Equal(t, convergence.Converged, m.Check(2.0))
}

func TestTrialMode_RevertsOnWorseFreeEnergy(t *testing.T) {
	m := convergence.NewTrialMode(1e-6, 100, 2)
	assert.Equal(t, convergence.Continue, m.Check(10.0))
	assert.Equal(t, convergence.Reverted, m.Check(9.0)) // F dropped
	assert.Equal(t, 1, m.Trials())
}

func TestTrialMode_DivergesAfterExhaustingTrials(t *testing.T) {
	m := convergence.NewTrialMode(1e-6, 100, 1)
	assert.Equal(t, convergence.Continue, m.Check(10.0))
	assert.Equal(t, convergence.Reverted, m.Check(9.0))
	assert.Equal(t, convergence.Diverged, m.Check(8.0))
}

func TestTrialMode_ConvergesOnSmallImprovement(t *testing.T) {
	m := convergence.NewTrialMode(1e-3, 100, 5)
	assert.Equal(t, convergence.Continue, m.Check(10.0))
	assert.Equal(t, convergence.Converged, m.Check(10.0000001))
}

func TestLM_DampingDoublesOnRevertAndHalvesOnAccept(t *testing.T) {
	m := convergence.NewLM(1e-6, 100, 5)
	assert.Equal(t, 1.0, m.Damping())
	assert.Equal(t, convergence.Continue, m.Check(10.0))
	assert.Equal(t, 0.5, m.Damping()) // first step always accepted, halves

	assert.Equal(t, convergence.Reverted, m.Check(9.0))
	assert.Equal(t, 1.0, m.Damping()) // doubled back up
}

func TestLM_DampingIsUnitForOtherPolicies(t *testing.T) {
	m := convergence.NewMaxIters(10)
	assert.Equal(t, 1.0, m.Damping())
}
