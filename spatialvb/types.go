package spatialvb

import (
	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/covcache"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/voxelgrid"
)

// Config bundles everything the outer coordinator needs to run spec
// §4.10's spatial VB loop over a whole voxel grid.
type Config struct {
	Grid        *voxelgrid.Grid
	SpatialDims neighbours.SpatialDims
	Metric      covcache.Metric

	Model      fwdmodel.ForwardModel
	Transforms []transform.Transform  // length P
	Priors     []prior.ParameterPrior // length P; spatial variants detected by Kind().IsSpatial()
	NewNoise   func() noise.Posterior

	// Inner (per-voxel, per-sweep) VB loop settings, spec §4.6/§4.7.
	InnerPolicy    convergence.Policy
	InnerTolerance float64
	InnerMaxIters  int
	InnerMaxTrials int

	// FixedRho/FixedDelta seed a spatial parameter's hyperparameters
	// (spec §4.10 init); 0 means "use the package default seed".
	FixedRho, FixedDelta []float64 // length P

	// ImageValues supplies the per-voxel external volume values an Image
	// prior reads (spec §4.3); ImageValues[i] is nil for any parameter
	// without an Image prior variant configured.
	ImageValues [][]float64 // length P, each nil or length V

	// UpdateFirstIter, if false, skips the hyperparameter re-estimation
	// step on outer iteration 0 (spec §4.10 step 2).
	UpdateFirstIter bool
	// UseSimEvidence, for P/p priors, updates every spatial parameter's
	// (rho,delta) synchronously from one pre-update snapshot instead of
	// sequentially folding each parameter's update into the next's input
	// (spec §4.10 step 3).
	UseSimEvidence bool
	// SpatialSpeed clips |delta-rho/rho| per outer step; >=1, or -1 for
	// unlimited (spec §4.10 step 4).
	SpatialSpeed float64

	EvidenceOpts                   covcache.EvidenceOptions
	SmoothingLower, SmoothingUpper float64

	MaxOuterIters  int
	OuterTolerance float64
	OuterPolicy    convergence.Policy

	// Concurrency bounds the per-sweep voxel fan-out (spec §5); 0 means
	// runtime.GOMAXPROCS(0).
	Concurrency int

	Logger runlog.Logger
}

// defaultRhoSeed/defaultDeltaSeed are fabber's long-standing defaults
// when FixedRho/FixedDelta don't name a seed for a spatial parameter.
const (
	defaultRhoSeed   = 1.0
	defaultDeltaSeed = 10.0
)
