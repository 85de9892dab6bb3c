package nlls

import "github.com/fabber-go/fabber/fwdmodel"

// Config holds one voxel's Gauss-Newton run settings.
type Config struct {
	Model fwdmodel.ForwardModel
	// Initial is the starting theta, in model space. If nil, it is
	// taken from Model.HardcodedInitial()'s means.
	Initial []float64
	// Tolerance is the |delta SSE| convergence threshold.
	Tolerance float64
	// MaxIters caps the number of accepted Gauss-Newton steps.
	MaxIters int
	// MaxTrials caps step-halving retries; the monitor counts reverts over
	// the whole run and reports divergence once they exceed MaxTrials.
	MaxTrials int
}

const (
	defaultTolerance = 1e-8
	defaultMaxIters  = 100
	defaultMaxTrials = 10
)

// State is the Gauss-Newton fit result for one voxel.
type State struct {
	Theta      []float64
	SSE        float64
	Iterations int
}
