package vb

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/internal/runerr"
	"github.com/fabber-go/fabber/mvn"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
)

// log2Pi is ln(2*pi), used by the Gaussian free-energy terms.
const log2Pi = 1.8378770664093453

// Run performs one voxel's VB inner loop (spec §4.6) to convergence, in
// place on state, against observation y and the per-parameter prior
// Inputs templates in priorInputs (spatial-prior fields — neighbour
// statistics, rho/delta, K-row — already filled in by the caller for
// this sweep; PosteriorMean/PosteriorVar are overwritten every inner
// iteration from the voxel's own current posterior).
//
// Returns ErrVoxelFailed if a Cholesky factorization fails at any
// point; state.Failed is set and the posterior is left as it was before
// the failing step, per spec §4.6 tie-break (c).
func Run(cfg Config, state *State, y []float64, priorInputs []prior.Inputs, monitor *convergence.Monitor, v runerr.Voxel, logger runlog.Logger) error {
	p := cfg.Model.NumParams()
	if len(y) != cfg.Model.NumTimepoints() {
		return ErrDimensionMismatch
	}
	if len(priorInputs) != p {
		return ErrDimensionMismatch
	}
	maxTrials := cfg.MaxRevertTrials
	if maxTrials <= 0 {
		maxTrials = 10
	}

	for {
		step, err := computeStep(cfg, state, y, priorInputs)
		if err != nil {
			state.Failed = true
			return voxelFailed(v, err)
		}

		stepScale := 1.0
		prevMu := state.Posterior.Mean()
		accepted := false

		for trial := 0; trial <= maxTrials; trial++ {
			candidateMu := dampedMu(prevMu, step.muRaw, stepScale)
			trialNoise := state.Noise.Clone()

			residual, err := residualAt(y, candidateMu, step)
			if err != nil {
				state.Failed = true
				return voxelFailed(v, err)
			}
			traceJSigmaJt := traceJSigmaJT(step.jFabber, step.sigma)
			if err := trialNoise.Update(residual, traceJSigmaJt); err != nil {
				// Noise-model divergence (e.g. AR(1)'s alpha clamp) is
				// recoverable: the posterior is left in a valid clamped
				// state, so the voxel continues rather than failing.
				logger.Warn("noise posterior update diverged", runlog.F("voxel", v.Index), runlog.F("cause", err.Error()))
			}

			noiseFE, err := trialNoise.FreeEnergyContribution(residual, traceJSigmaJt)
			if err != nil {
				state.Failed = true
				return voxelFailed(v, err)
			}
			thetaFE := thetaFreeEnergy(candidateMu, step.sigma, step.mu0, step.lambda0)
			f := noiseFE + thetaFE

			status := monitor.Check(f)
			switch status {
			case convergence.Continue, convergence.Converged:
				posterior, err := mvn.NewFromCovariance(candidateMu, step.sigma)
				if err != nil {
					state.Failed = true
					return voxelFailed(v, err)
				}
				state.Posterior = posterior
				state.Noise = trialNoise
				state.FreeEnergy = f
				state.Iterations++
				accepted = true
				if status == convergence.Converged {
					return nil
				}
			case convergence.Reverted:
				stepScale /= 2
				continue
			case convergence.Diverged:
				state.Failed = true
				return fmt.Errorf("vb: Run: %w", ErrVoxelFailed)
			}
			break
		}

		if !accepted {
			state.Failed = true
			return fmt.Errorf("vb: Run: %w", ErrVoxelFailed)
		}
	}
}

func voxelFailed(v runerr.Voxel, cause error) error {
	return runerr.AtVoxel(runerr.KindNumerical, v, -1, "VB step failed", cause)
}

// dampedMu returns prev + scale*(raw-prev), componentwise: the "halve an
// implicit step on mu toward the previous mu" safeguard of spec §4.6
// tie-break (a).
func dampedMu(prev, raw []float64, scale float64) []float64 {
	out := make([]float64, len(prev))
	for i := range out {
		out[i] = prev[i] + scale*(raw[i]-prev[i])
	}
	return out
}

// thetaFreeEnergy returns E[log p(theta)] - E[log q(theta)] under the
// Gaussian prior (mu0, diag(lambda0)) and the Gaussian posterior
// (mu, Sigma): the prior cross-entropy term plus the posterior's own
// differential entropy.
func thetaFreeEnergy(mu []float64, sigma *mat.SymDense, mu0, lambda0 []float64) float64 {
	p := len(mu)
	priorTerm := 0.0
	for i := 0; i < p; i++ {
		diff := mu[i] - mu0[i]
		priorTerm += 0.5*(math.Log(lambda0[i])-log2Pi) - 0.5*lambda0[i]*(diff*diff+sigma.At(i, i))
	}

	var chol mat.Cholesky
	logDetSigma := 0.0
	if ok := chol.Factorize(sigma); ok {
		logDetSigma = chol.LogDet()
	}
	entropyTerm := 0.5*logDetSigma + 0.5*float64(p)*(1+log2Pi)

	return priorTerm + entropyTerm
}
