package spatialvb

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fabber-go/fabber/convergence"
	"github.com/fabber-go/fabber/internal/runerr"
	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
	"github.com/fabber-go/fabber/vb"
)

// snapshot freezes the cross-voxel statistics every voxel's VB update in
// this sweep is allowed to see: the per-parameter posterior mean across
// every voxel, taken before any voxel in the sweep has moved (spec §5:
// "priors are snapshotted at sweep start").
type snapshot struct {
	means [][]float64 // [param][voxel]
	vars  [][]float64 // [param][voxel]
}

func buildSnapshot(states []*vb.State, p int) (*snapshot, error) {
	v := len(states)
	s := &snapshot{means: make([][]float64, p), vars: make([][]float64, p)}
	for i := 0; i < p; i++ {
		s.means[i] = make([]float64, v)
		s.vars[i] = make([]float64, v)
	}
	for vi, st := range states {
		mean := st.Posterior.Mean()
		cov, err := st.Posterior.Covariance()
		if err != nil {
			return nil, err
		}
		for i := 0; i < p; i++ {
			s.means[i][vi] = mean[i]
			s.vars[i][vi] = cov.At(i, i)
		}
	}
	return s, nil
}

// runSweep performs one outer iteration's step 1: every non-failed
// voxel's per-voxel VB update (§4.6) to its own inner convergence, fanned
// out across a worker pool bounded by cfg.Concurrency (spec §5). A single
// voxel's numerical failure is recorded on its own State and logged, not
// propagated as a sweep-fatal error — every other voxel's update still
// runs to completion. Every worker returns nil, so the only error
// runSweep returns is ctx's, when it is cancelled before every voxel has
// been dispatched.
func (co *Coordinator) runSweep(ctx context.Context, states []*vb.State, data [][]float64, snap *snapshot) error {
	limit := co.cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	vbCfg := vb.Config{
		Model:           co.cfg.Model,
		Transforms:      co.cfg.Transforms,
		Priors:          co.cfg.Priors,
		NewNoise:        co.cfg.NewNoise,
		MaxRevertTrials: co.cfg.InnerMaxTrials,
	}

	for vi := range states {
		vi := vi
		if states[vi].Failed {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Go(func() error {
			inputs := co.voxelPriorInputs(vi, snap)
			monitor := co.newInnerMonitor()
			voxel, err := co.voxelErrCoord(vi)
			if err != nil {
				co.cfg.Logger.Warn("voxel coordinate lookup failed", runlog.F("voxel", vi), runlog.F("cause", err.Error()))
				return nil
			}
			if err := vb.Run(vbCfg, states[vi], data[vi], inputs, monitor, voxel, co.cfg.Logger); err != nil {
				re := toRunError(voxel, err)
				co.cfg.Logger.VoxelError(re)
			}
			return nil
		})
	}

	return g.Wait()
}

// toRunError normalises a vb.Run error (either already a *runerr.RunError
// from a Cholesky failure, or a wrapped vb.ErrVoxelFailed sentinel from an
// exhausted-trials divergence) into one RunError for logging.
func toRunError(v runerr.Voxel, err error) *runerr.RunError {
	if re, ok := err.(*runerr.RunError); ok {
		return re
	}
	return runerr.AtVoxel(runerr.KindNumerical, v, -1, "voxel VB update diverged", err)
}

func (co *Coordinator) voxelErrCoord(vi int) (runerr.Voxel, error) {
	c, err := co.cfg.Grid.Coord(vi)
	if err != nil {
		return runerr.Voxel{}, err
	}
	return runerr.Voxel{Index: vi, X: c.X, Y: c.Y, Z: c.Z}, nil
}

func (co *Coordinator) newInnerMonitor() *convergence.Monitor {
	switch co.cfg.InnerPolicy {
	case convergence.PolicyMaxIters:
		return convergence.NewMaxIters(co.cfg.InnerMaxIters)
	case convergence.PolicyFChange:
		return convergence.NewFChange(co.cfg.InnerTolerance, co.cfg.InnerMaxIters)
	case convergence.PolicyLM:
		return convergence.NewLM(co.cfg.InnerTolerance, co.cfg.InnerMaxIters, co.cfg.InnerMaxTrials)
	default:
		return convergence.NewTrialMode(co.cfg.InnerTolerance, co.cfg.InnerMaxIters, co.cfg.InnerMaxTrials)
	}
}

// voxelPriorInputs builds the per-parameter prior.Inputs template for
// voxel vi from the sweep's frozen snapshot and the current (rho,delta).
// Non-spatial parameters get a zero-value Inputs beyond VoxelIndex; the
// ARD variant's PosteriorMean/PosteriorVar fields are filled in fresh
// every inner iteration by package vb itself.
func (co *Coordinator) voxelPriorInputs(vi int, snap *snapshot) []prior.Inputs {
	inputs := make([]prior.Inputs, co.p)
	for i := 0; i < co.p; i++ {
		in := prior.Inputs{VoxelIndex: vi}
		if co.hasSpatial[i] {
			co.fillSpatialInputs(&in, i, vi, snap)
		}
		if co.hasImage[i] && i < len(co.cfg.ImageValues) && co.cfg.ImageValues[i] != nil {
			in.ImageValue = co.cfg.ImageValues[i][vi]
		}
		inputs[i] = in
	}
	return inputs
}

func (co *Coordinator) fillSpatialInputs(in *prior.Inputs, param, vi int, snap *snapshot) {
	switch co.spatialKind[param] {
	case prior.KindSpatialM, prior.KindSpatialm:
		n1, err := co.graph.N1(vi)
		if err != nil {
			return
		}
		means := make([]float64, len(n1))
		for j, nb := range n1 {
			means[j] = snap.means[param][nb]
		}
		in.NeighbourMeans = means
		in.NeighbourCount = len(n1)
		in.ExpectedNeighbourCount = co.expectedCount
		in.Rho = co.rho[param]
		in.Delta = co.delta[param]

	case prior.KindSpatialP, prior.KindSpatialp:
		kinv, err := co.cache.Cinv(co.delta[param])
		if err != nil {
			return
		}
		v := co.cache.Len()
		row := make([]float64, v)
		for j := 0; j < v; j++ {
			row[j] = kinv.At(vi, j)
		}
		if co.spatialKind[param] == prior.KindSpatialp {
			row = truncateToNeighbours(row, vi, co.graph)
		}
		in.KRow = row
		in.AllPosteriorMeans = snap.means[param]
		in.Rho = co.rho[param]
		in.Delta = co.delta[param]
	}
}

// truncateToNeighbours zeroes every entry of row except v itself and its
// first-order neighbours, implementing Spatial p's tridiagonal
// approximation of K(delta)^-1's row.
func truncateToNeighbours(row []float64, v int, graph *neighbours.Graph) []float64 {
	out := make([]float64, len(row))
	out[v] = row[v]
	n1, err := graph.N1(v)
	if err != nil {
		return out
	}
	for _, nb := range n1 {
		out[nb] = row[nb]
	}
	return out
}
