package noise

import "math"

// arStabilityBound is the |alpha| clamp of spec §4.4's invariant.
const arStabilityBound = 0.999

// AR1 adds a scalar AR(1) coefficient with its own Gaussian posterior on
// top of White: the effective residual is whitened by (1 - alpha*L) before
// the Gamma update, and alpha is updated by a closed-form conditional
// Gaussian from the whitened residual's lag-1 autocorrelation.
type AR1 struct {
	White
	Alpha         float64 // posterior mean of the AR coefficient
	AlphaVar      float64 // posterior variance
	alphaPriorVar float64 // prior variance hyperparameter (prior mean fixed at 0)
}

// NewAR1 builds an AR1 posterior with the given White prior hyperparameters
// and an AR-coefficient prior N(0, alphaPriorVar).
func NewAR1(c0, s0, alphaPriorVar float64) *AR1 {
	return &AR1{White: *NewWhite(c0, s0), AlphaVar: alphaPriorVar, alphaPriorVar: alphaPriorVar}
}

// whiten applies r_tilde[0] = r[0], r_tilde[t] = r[t] - alpha*r[t-1] for
// t = 1..T-1.
func whiten(r []float64, alpha float64) []float64 {
	out := make([]float64, len(r))
	if len(r) == 0 {
		return out
	}
	out[0] = r[0]
	for t := 1; t < len(r); t++ {
		out[t] = r[t] - alpha*r[t-1]
	}
	return out
}

// Update whitens residual by the current alpha, runs the White Gamma
// update on the whitened residual, then updates alpha from the whitened
// residual's autocorrelation. Returns ErrARDiverged (non-fatal) if the
// raw alpha update exceeded the stability bound and was clamped.
func (a *AR1) Update(residual []float64, traceJSigmaJt float64) error {
	whitened := whiten(residual, a.Alpha)
	if err := a.White.Update(whitened, traceJSigmaJt); err != nil {
		return err
	}
	return a.updateAlpha(residual)
}

// updateAlpha performs the closed-form conditional-Gaussian update:
//
//	precision = E[phi]*sum(r[t-1]^2) + 1/alphaPriorVar
//	mean      = precision^-1 * E[phi]*sum(r[t]*r[t-1])
//
// (prior mean for alpha is 0, so it drops out of the precision-weighted
// numerator). The raw mean is clamped to +-arStabilityBound.
func (a *AR1) updateAlpha(residual []float64) error {
	if len(residual) < 2 {
		return nil
	}
	var sumLag2, sumCross float64
	for t := 1; t < len(residual); t++ {
		sumLag2 += residual[t-1] * residual[t-1]
		sumCross += residual[t] * residual[t-1]
	}
	expPhi := a.ExpectedPrecision()
	precision := expPhi*sumLag2 + 1/a.alphaPriorVar
	if precision <= 0 || math.IsNaN(precision) {
		return ErrDegenerateUpdate
	}
	raw := expPhi * sumCross / precision
	a.AlphaVar = 1 / precision

	if math.Abs(raw) >= arStabilityBound {
		if raw > 0 {
			a.Alpha = arStabilityBound
		} else {
			a.Alpha = -arStabilityBound
		}
		return ErrARDiverged
	}
	a.Alpha = raw
	return nil
}

// FreeEnergyContribution evaluates the White free-energy terms against the
// alpha-whitened residual, since that is what this posterior's (C,S) were
// actually fit against.
func (a *AR1) FreeEnergyContribution(residual []float64, traceJSigmaJt float64) (float64, error) {
	return a.White.FreeEnergyContribution(whiten(residual, a.Alpha), traceJSigmaJt)
}

// Clone returns a deep copy, boxed back into the Posterior interface.
func (a *AR1) Clone() Posterior {
	cp := *a
	return &cp
}
