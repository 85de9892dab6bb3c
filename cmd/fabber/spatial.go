package main

import (
	"strconv"

	"github.com/fabber-go/fabber/config"
	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/covcache"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
	"github.com/fabber-go/fabber/spatialvb"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/voxelgrid"
)

func innerPolicy(name string) convergence.Policy {
	switch name {
	case "maxits":
		return convergence.PolicyMaxIters
	case "fchange":
		return convergence.PolicyFChange
	case "lm":
		return convergence.PolicyLM
	default:
		return convergence.PolicyTrialMode
	}
}

func outerPolicy(name string) convergence.Policy {
	if name == "maxits" {
		return convergence.PolicyMaxIters
	}
	return convergence.PolicyFChange
}

func spatialDims(raw map[string]string) neighbours.SpatialDims {
	switch intRaw(raw, "spatial-dims", 0) {
	case 2:
		return neighbours.Dims2
	case 3:
		return neighbours.Dims3
	default:
		return neighbours.Dims0
	}
}

func metric(raw map[string]string) covcache.Metric {
	switch raw["metric"] {
	case "manhattan":
		return covcache.Manhattan
	case "squared-euclidean":
		return covcache.SquaredEuclidean
	default:
		return covcache.Euclidean
	}
}

// perParamFloats reads --<prefix><i> for each of p parameters (1-indexed)
// into a slice, 0 where absent (spatialvb.Config's "0 means default seed").
func perParamFloats(raw map[string]string, prefix string, p int) []float64 {
	out := make([]float64, p)
	for i := 0; i < p; i++ {
		out[i] = floatRaw(raw, prefixedKey(prefix, i+1), 0)
	}
	return out
}

func prefixedKey(prefix string, idx int) string {
	return prefix + strconv.Itoa(idx)
}

// buildSpatialConfig assembles spatialvb.Config for either the plain "vb"
// method (SpatialDims forced to Dims0, per spec §8's "spatial idempotence"
// invariant: spatialvb with no spatial coupling is a pure per-voxel VB
// run) or "spatialvb" (spatial-dims read from options).
func buildSpatialConfig(opts *config.Options, grid *voxelgrid.Grid, model fwdmodel.ForwardModel,
	transforms []transform.Transform, priors []prior.ParameterPrior, newNoise func() noise.Posterior,
	imageValues [][]float64, logger runlog.Logger) spatialvb.Config {
	raw := opts.Raw
	p := model.NumParams()

	dims := neighbours.Dims0
	if opts.Method == "spatialvb" {
		dims = spatialDims(raw)
	}

	evidenceOpts := covcache.DefaultEvidenceOptions()

	return spatialvb.Config{
		Grid:        grid,
		SpatialDims: dims,
		Metric:      metric(raw),

		Model:      model,
		Transforms: transforms,
		Priors:     priors,
		NewNoise:   newNoise,

		InnerPolicy:    innerPolicy(raw["inner-policy"]),
		InnerTolerance: floatRaw(raw, "inner-tol", 1e-6),
		InnerMaxIters:  intRaw(raw, "inner-maxits", 50),
		InnerMaxTrials: intRaw(raw, "inner-maxtrials", 10),

		FixedRho:   perParamFloats(raw, "fixed-rho", p),
		FixedDelta: perParamFloats(raw, "fixed-delta", p),

		ImageValues: imageValues,

		UpdateFirstIter: opts.Bool("update-first-iter"),
		UseSimEvidence:  opts.Bool("use-sim-evidence"),
		SpatialSpeed:    floatRaw(raw, "spatial-speed", -1),

		EvidenceOpts:   evidenceOpts,
		SmoothingLower: evidenceOpts.Lower,
		SmoothingUpper: evidenceOpts.Upper,

		MaxOuterIters:  intRaw(raw, "outer-maxits", 20),
		OuterTolerance: floatRaw(raw, "outer-tol", 1e-4),
		OuterPolicy:    outerPolicy(raw["outer-policy"]),

		Concurrency: intRaw(raw, "concurrency", 0),
		Logger:      logger,
	}
}
