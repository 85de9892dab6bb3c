package spatialvb

import (
	"context"
	"fmt"
	"math"

	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/vb"
)

// Init builds every voxel's starting vb.State from the forward model's
// hard-coded initial distribution (spec §3), one per row of data.
func (co *Coordinator) Init(data [][]float64) ([]*vb.State, error) {
	if len(data) != co.cfg.Grid.Len() {
		return nil, ErrDimensionMismatch
	}
	vbCfg := vb.Config{
		Model:           co.cfg.Model,
		Transforms:      co.cfg.Transforms,
		Priors:          co.cfg.Priors,
		NewNoise:        co.cfg.NewNoise,
		MaxRevertTrials: co.cfg.InnerMaxTrials,
	}

	states := make([]*vb.State, len(data))
	for vi := range data {
		state, err := vb.Init(vbCfg)
		if err != nil {
			return nil, fmt.Errorf("spatialvb: Init: voxel %d: %w", vi, err)
		}
		states[vi] = state
	}
	return states, nil
}

// Run drives spec §4.10's outer loop to convergence: alternating sweeps
// of per-voxel VB updates (step 1) with spatial hyperparameter
// re-estimation (steps 2-4), aggregating free energy for the outer
// convergence monitor (step 5), until outer convergence, the outer
// iteration cap, or ctx cancellation.
func (co *Coordinator) Run(ctx context.Context, data [][]float64) (*Result, error) {
	states, err := co.Init(data)
	if err != nil {
		return nil, err
	}

	outer := co.newOuterMonitor()

	var aggregateF float64
	iter := 0
	for {
		if err := ctx.Err(); err != nil {
			return co.resultFrom(states, iter, aggregateF), err
		}

		snap, err := buildSnapshot(states, co.p)
		if err != nil {
			return nil, fmt.Errorf("spatialvb: Run: %w", err)
		}

		if err := co.runSweep(ctx, states, data, snap); err != nil {
			return co.resultFrom(states, iter, aggregateF), err
		}

		if iter > 0 || co.cfg.UpdateFirstIter {
			postSnap, err := buildSnapshot(states, co.p)
			if err != nil {
				return nil, fmt.Errorf("spatialvb: Run: %w", err)
			}
			if err := co.updateHyperparams(postSnap); err != nil {
				return nil, fmt.Errorf("spatialvb: Run: %w", err)
			}
		}

		aggregateF = sumFreeEnergy(states)
		if math.IsNaN(aggregateF) || math.IsInf(aggregateF, 0) {
			return co.resultFrom(states, iter, aggregateF), ErrOuterDiverged
		}

		iter++
		status := outer.Check(aggregateF)
		switch status {
		case convergence.Converged:
			return co.resultFrom(states, iter, aggregateF), nil
		case convergence.Diverged:
			return co.resultFrom(states, iter, aggregateF), ErrOuterDiverged
		}
	}
}

func (co *Coordinator) newOuterMonitor() *convergence.Monitor {
	maxIters := co.cfg.MaxOuterIters
	if maxIters <= 0 {
		maxIters = 20
	}
	switch co.cfg.OuterPolicy {
	case convergence.PolicyMaxIters:
		return convergence.NewMaxIters(maxIters)
	default:
		return convergence.NewFChange(co.cfg.OuterTolerance, maxIters)
	}
}

func sumFreeEnergy(states []*vb.State) float64 {
	sum := 0.0
	for _, s := range states {
		if s.Failed {
			continue
		}
		sum += s.FreeEnergy
	}
	return sum
}

func (co *Coordinator) resultFrom(states []*vb.State, iter int, f float64) *Result {
	var failed []int
	for vi, s := range states {
		if s.Failed {
			failed = append(failed, vi)
		}
	}
	return &Result{
		States:          states,
		Rho:             append([]float64(nil), co.rho...),
		Delta:           append([]float64(nil), co.delta...),
		OuterIterations: iter,
		FreeEnergy:      f,
		Failed:          failed,
	}
}
