package spatialvb

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/covcache"
	"github.com/fabber-go/fabber/prior"
)

// updateHyperparams implements spec §4.10 steps 2-4: for every
// spatially-configured parameter, re-estimate (rho, delta) from the
// sweep's frozen snapshot, then clip the resulting precision change to
// SpatialSpeed.
func (co *Coordinator) updateHyperparams(snap *snapshot) error {
	type candidate struct {
		param      int
		rho, delta float64
	}

	var mCandidates []candidate
	var pCandidates []candidate

	for i := 0; i < co.p; i++ {
		if !co.hasSpatial[i] {
			continue
		}
		switch co.spatialKind[i] {
		case prior.KindSpatialM, prior.KindSpatialm:
			delta, rho, err := co.smoothingUpdate(i, snap)
			if err != nil {
				return fmt.Errorf("spatialvb: updateHyperparams: param %d: %w", i, err)
			}
			mCandidates = append(mCandidates, candidate{i, rho, delta})

		case prior.KindSpatialP, prior.KindSpatialp:
			delta, rho, err := co.evidenceUpdate(i, snap)
			if err != nil {
				return fmt.Errorf("spatialvb: updateHyperparams: param %d: %w", i, err)
			}
			pCandidates = append(pCandidates, candidate{i, rho, delta})
			if !co.cfg.UseSimEvidence {
				co.applyCandidate(i, rho, delta)
			}
		}
	}

	for _, c := range mCandidates {
		co.applyCandidate(c.param, c.rho, c.delta)
	}
	if co.cfg.UseSimEvidence {
		for _, c := range pCandidates {
			co.applyCandidate(c.param, c.rho, c.delta)
		}
	}
	return nil
}

// applyCandidate commits a parameter's newly-estimated (rho, delta),
// clipping rho's fractional change to SpatialSpeed (spec §4.10 step 4).
func (co *Coordinator) applyCandidate(param int, newRho, newDelta float64) {
	oldRho := co.rho[param]
	speed := co.cfg.SpatialSpeed
	if speed > 0 && oldRho > 0 {
		ratio := (newRho - oldRho) / oldRho
		if ratio > speed {
			ratio = speed
		}
		if ratio < -speed {
			ratio = -speed
		}
		newRho = oldRho * (1 + ratio)
	}
	co.rho[param] = newRho
	co.delta[param] = newDelta
}

// smoothingUpdate computes the Sahani-style covariance-ratio diagonal and
// mean-difference vector for parameter i (Spatial M/m) and hands them to
// the covariance cache's 1-D evidence bisection.
func (co *Coordinator) smoothingUpdate(param int, snap *snapshot) (delta, rho float64, err error) {
	v := co.cache.Len()
	cDiag := snap.vars[param]
	d := make([]float64, v)
	for vi := 0; vi < v; vi++ {
		n1, err := co.graph.N1(vi)
		if err != nil || len(n1) == 0 {
			continue
		}
		sum := 0.0
		for _, nb := range n1 {
			sum += snap.means[param][nb]
		}
		neighbourMean := sum / float64(len(n1))
		d[vi] = snap.means[param][vi] - neighbourMean
	}

	lower, upper := co.smoothingBounds()
	return co.cache.OptimizeSmoothingScale(cDiag, d, lower, upper)
}

func (co *Coordinator) smoothingBounds() (float64, float64) {
	lower, upper := co.cfg.SmoothingLower, co.cfg.SmoothingUpper
	if lower <= 0 {
		lower = 1e-3
	}
	if upper <= lower {
		upper = 1e3
	}
	return lower, upper
}

// evidenceUpdate computes the "posterior without its prior" mean and
// covariance for parameter i (Spatial P/p) and hands them to the
// covariance cache's Penny-style evidence optimisation. The cross-voxel
// covariance is approximated as diagonal (each voxel's own marginal
// posterior variance): package vb's mean-field treatment of voxels never
// forms a joint cross-voxel covariance, so the full Sigma this step would
// ideally use is not available; the diagonal approximation is the
// natural substitute and is documented in DESIGN.md.
func (co *Coordinator) evidenceUpdate(param int, snap *snapshot) (delta, rho float64, err error) {
	v := co.cache.Len()
	mu := snap.means[param]
	sigma := mat.NewSymDense(v, nil)
	for vi := 0; vi < v; vi++ {
		sigma.SetSym(vi, vi, snap.vars[param][vi])
	}

	opts := co.cfg.EvidenceOpts
	if opts.Lower <= 0 || opts.Upper <= opts.Lower {
		opts = covcache.DefaultEvidenceOptions()
	}
	return co.cache.OptimizeEvidence(mu, sigma, opts)
}
