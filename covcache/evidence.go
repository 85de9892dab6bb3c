package covcache

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// EvidenceOptions configures OptimizeEvidence's search budget.
type EvidenceOptions struct {
	// Lower, Upper bound the delta search range.
	Lower, Upper float64
	// NewDeltaEvaluations caps the number of evidence evaluations the
	// secant search is allowed before it must fall back or give up.
	NewDeltaEvaluations int
	// BruteForceDeltaSearch, if true, falls back to a grid search over
	// [Lower, Upper] in log-delta when the secant search fails to
	// bracket a root within NewDeltaEvaluations.
	BruteForceDeltaSearch bool
}

// DefaultEvidenceOptions returns fabber's long-standing defaults.
func DefaultEvidenceOptions() EvidenceOptions {
	return EvidenceOptions{
		Lower:                 defaultDeltaLower,
		Upper:                 defaultDeltaUpper,
		NewDeltaEvaluations:   20,
		BruteForceDeltaSearch: true,
	}
}

// OptimizeEvidence implements the Penny-style evidence optimisation used
// by the Spatial P/p priors: given mu and Sigma, the "posterior without
// its prior" mean and covariance for parameter k across every voxel
// (length V and V x V respectively), it finds the delta that maximises
// the log evidence
//
//	log integral N(theta_k | mu, Sigma) * N(theta_k | 0, rho*K(delta)) d theta_k
//	= log N(mu | 0, Sigma + rho*K(delta))
//
// by an iterative secant search on d(log evidence)/d(log delta), solving
// for rho at each trial delta by a bounded golden-section profile search
// (no closed form exists once Sigma is non-zero). Returns
// ErrSearchDiverged if the secant search exhausts its evaluation budget
// without bracketing a root and opts.BruteForceDeltaSearch is false.
func (c *Cache) OptimizeEvidence(mu []float64, sigma *mat.SymDense, opts EvidenceOptions) (delta, rho float64, err error) {
	if len(mu) != c.v || sigma.SymmetricDim() != c.v {
		return 0, 0, ErrDimensionMismatch
	}
	if opts.Lower <= 0 || opts.Upper <= opts.Lower {
		return 0, 0, ErrInvalidRange
	}
	if opts.NewDeltaEvaluations <= 0 {
		opts.NewDeltaEvaluations = 20
	}

	muVec := mat.NewVecDense(c.v, mu)

	derivAt := func(logDelta float64) (float64, float64, error) {
		const h = 1e-3
		eLo, _, err := c.evidenceAt(muVec, sigma, math.Exp(logDelta-h))
		if err != nil {
			return 0, 0, err
		}
		eHi, rhoHi, err := c.evidenceAt(muVec, sigma, math.Exp(logDelta+h))
		if err != nil {
			return 0, 0, err
		}
		return (eHi - eLo) / (2 * h), rhoHi, nil
	}

	x0, x1 := math.Log(opts.Lower), math.Log(opts.Upper)
	f0, _, err := derivAt(x0)
	if err != nil {
		return 0, 0, err
	}
	f1, _, err := derivAt(x1)
	if err != nil {
		return 0, 0, err
	}

	evals := 2
	for evals < opts.NewDeltaEvaluations {
		if f1 == f0 {
			break
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) || x2 < math.Log(opts.Lower) || x2 > math.Log(opts.Upper) {
			break
		}
		f2, rho2, err := derivAt(x2)
		if err != nil {
			return 0, 0, err
		}
		evals++
		if math.Abs(f2) < 1e-8 || math.Abs(x2-x1) < 1e-9 {
			return math.Exp(x2), rho2, nil
		}
		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}

	if !opts.BruteForceDeltaSearch {
		return 0, 0, ErrSearchDiverged
	}
	return c.bruteForceDeltaSearch(muVec, sigma, opts.Lower, opts.Upper)
}

// bruteForceDeltaSearch grid-searches log-delta and returns the delta
// achieving the highest profiled evidence, used when the secant search
// in OptimizeEvidence fails to converge.
func (c *Cache) bruteForceDeltaSearch(muVec *mat.VecDense, sigma *mat.SymDense, lower, upper float64) (float64, float64, error) {
	const gridPoints = 64
	logLo, logHi := math.Log(lower), math.Log(upper)

	bestEvidence := math.Inf(-1)
	var bestDelta, bestRho float64
	for i := 0; i < gridPoints; i++ {
		logDelta := logLo + (logHi-logLo)*float64(i)/float64(gridPoints-1)
		delta := math.Exp(logDelta)
		evidence, rho, err := c.evidenceAt(muVec, sigma, delta)
		if err != nil {
			continue
		}
		if evidence > bestEvidence {
			bestEvidence, bestDelta, bestRho = evidence, delta, rho
		}
	}
	if math.IsInf(bestEvidence, -1) {
		return 0, 0, fmt.Errorf("covcache: bruteForceDeltaSearch: %w", ErrSearchDiverged)
	}
	return bestDelta, bestRho, nil
}

// evidenceAt profiles rho by golden-section search over a wide log-rho
// range, then returns the evidence and rho at that optimum for the given
// delta.
func (c *Cache) evidenceAt(muVec *mat.VecDense, sigma *mat.SymDense, delta float64) (float64, float64, error) {
	k, err := c.kernelAt(delta)
	if err != nil {
		return 0, 0, err
	}

	const goldenRatio = 0.6180339887498949
	logRhoLo, logRhoHi := math.Log(1e-6), math.Log(1e6)
	evalAtLogRho := func(logRho float64) (float64, error) {
		return c.gaussianLogEvidence(muVec, sigma, k, math.Exp(logRho))
	}

	a, b := logRhoLo, logRhoHi
	c1 := b - goldenRatio*(b-a)
	c2 := a + goldenRatio*(b-a)
	f1, err := evalAtLogRho(c1)
	if err != nil {
		return 0, 0, err
	}
	f2, err := evalAtLogRho(c2)
	if err != nil {
		return 0, 0, err
	}
	for i := 0; i < 40; i++ {
		if f1 < f2 {
			a = c1
			c1, f1 = c2, f2
			c2 = a + goldenRatio*(b-a)
			f2, err = evalAtLogRho(c2)
		} else {
			b = c2
			c2, f2 = c1, f1
			c1 = b - goldenRatio*(b-a)
			f1, err = evalAtLogRho(c1)
		}
		if err != nil {
			return 0, 0, err
		}
	}

	logRho := (a + b) / 2
	rho := math.Exp(logRho)
	evidence, err := c.gaussianLogEvidence(muVec, sigma, k, rho)
	return evidence, rho, err
}

// kernelAt builds K(delta) directly (not its inverse); OptimizeEvidence
// needs K itself to form Sigma + rho*K, unlike Cinv's K^-1.
func (c *Cache) kernelAt(delta float64) (*mat.SymDense, error) {
	if delta <= 0 {
		return nil, ErrNonPositiveDelta
	}
	k := mat.NewSymDense(c.v, nil)
	for i := 0; i < c.v; i++ {
		for j := i; j < c.v; j++ {
			k.SetSym(i, j, math.Exp(-c.d.At(i, j)/delta))
		}
	}
	return k, nil
}

// gaussianLogEvidence returns log N(mu | 0, Sigma + rho*K).
func (c *Cache) gaussianLogEvidence(muVec *mat.VecDense, sigma, k *mat.SymDense, rho float64) (float64, error) {
	combined := mat.NewSymDense(c.v, nil)
	for i := 0; i < c.v; i++ {
		for j := i; j < c.v; j++ {
			combined.SetSym(i, j, sigma.At(i, j)+rho*k.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(combined); !ok {
		return math.Inf(-1), nil
	}

	muCol := mat.NewDense(c.v, 1, muVec.RawVector().Data)
	var solved mat.Dense
	if err := chol.SolveTo(&solved, muCol); err != nil {
		return math.Inf(-1), nil
	}
	quadForm := mat.Dot(muVec, mat.NewVecDense(c.v, solved.RawMatrix().Data))

	logDet := chol.LogDet()
	v := float64(c.v)

	return -0.5 * (logDet + quadForm + v*math.Log(2*math.Pi)), nil
}
