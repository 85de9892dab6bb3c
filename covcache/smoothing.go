package covcache

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default delta search bounds, shared by OptimizeSmoothingScale callers
// that don't have a narrower prior range in mind, and by
// DefaultEvidenceOptions.
const (
	defaultDeltaLower       = 1e-3
	defaultDeltaUpper       = 1e3
	smoothingBisectionSteps = 40
)

// OptimizeSmoothingScale implements the Sahani-style update used by the
// Spatial M/m priors: given the current per-voxel covariance-ratio
// diagonal cDiag and mean-difference ratio d (both length V, one entry
// per voxel, produced by spatialvb from the current {mu_v, Sigma_v}),
// it returns the delta in [lower, upper] that maximises a 1-D evidence
// surrogate by bisection in log-delta, and the corresponding rho.
//
// The surrogate profiles rho out analytically at each delta as
// rho(delta) = V / quadForm(delta), where quadForm(delta) = d^T K(delta)^-1 d,
// then bisects on the sign of the discrete derivative of
// -0.5*logdet(K(delta)) - 0.5*V*log(quadForm(delta))
// with respect to log(delta), which is concave and unimodal over the
// admissible range for a well-posed problem.
func (c *Cache) OptimizeSmoothingScale(cDiag, d []float64, lower, upper float64) (delta, rho float64, err error) {
	if len(d) != c.v || len(cDiag) != c.v {
		return 0, 0, ErrDimensionMismatch
	}
	if lower <= 0 || upper <= lower {
		return 0, 0, ErrInvalidRange
	}

	objectiveDeriv := func(logDelta float64) (float64, float64, error) {
		const h = 1e-3
		fLo, _, err := c.smoothingEvidence(d, math.Exp(logDelta-h))
		if err != nil {
			return 0, 0, err
		}
		fHi, rhoHi, err := c.smoothingEvidence(d, math.Exp(logDelta+h))
		if err != nil {
			return 0, 0, err
		}
		return (fHi - fLo) / (2 * h), rhoHi, nil
	}

	logLo, logHi := math.Log(lower), math.Log(upper)
	derivLo, _, err := objectiveDeriv(logLo)
	if err != nil {
		return 0, 0, err
	}
	derivHi, _, err := objectiveDeriv(logHi)
	if err != nil {
		return 0, 0, err
	}

	// If the derivative doesn't change sign across the range, the
	// optimum sits at whichever boundary the evidence favours.
	if derivLo <= 0 {
		_, r, err := c.smoothingEvidence(d, lower)
		return lower, r, err
	}
	if derivHi >= 0 {
		_, r, err := c.smoothingEvidence(d, upper)
		return upper, r, err
	}

	for i := 0; i < smoothingBisectionSteps; i++ {
		mid := (logLo + logHi) / 2
		derivMid, _, err := objectiveDeriv(mid)
		if err != nil {
			return 0, 0, err
		}
		if derivMid > 0 {
			logLo = mid
		} else {
			logHi = mid
		}
	}

	delta = math.Exp((logLo + logHi) / 2)
	_, rho, err = c.smoothingEvidence(d, delta)
	if err != nil {
		return 0, 0, fmt.Errorf("covcache: OptimizeSmoothingScale: %w", err)
	}

	return delta, rho, nil
}

// smoothingEvidence returns the profiled-rho evidence surrogate value
// and the profiled rho itself at the given delta.
func (c *Cache) smoothingEvidence(d []float64, delta float64) (float64, float64, error) {
	kinv, err := c.Cinv(delta)
	if err != nil {
		return 0, 0, err
	}

	dVec := mat.NewVecDense(c.v, d)
	var kinvD mat.VecDense
	kinvD.MulVec(kinv, dVec)
	quadForm := mat.Dot(dVec, &kinvD)
	if quadForm <= 0 {
		quadForm = 1e-12
	}
	rho := float64(c.v) / quadForm

	logDetK, err := c.logDetK(delta)
	if err != nil {
		return 0, 0, err
	}

	evidence := -0.5*logDetK - 0.5*float64(c.v)*math.Log(quadForm)
	return evidence, rho, nil
}

// logDetK returns log|K(delta)| by building K(delta) and factorizing it
// afresh, since Cinv does not retain its Cholesky factorization.
func (c *Cache) logDetK(delta float64) (float64, error) {
	k := mat.NewSymDense(c.v, nil)
	for i := 0; i < c.v; i++ {
		for j := i; j < c.v; j++ {
			k.SetSym(i, j, math.Exp(-c.d.At(i, j)/delta))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return 0, fmt.Errorf("covcache: logDetK(delta=%g): %w", delta, ErrNotPositiveDefinite)
	}
	return chol.LogDet(), nil
}
