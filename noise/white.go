package noise

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// White is q(phi) = Gamma(C, S) over the observation precision, the
// conjugate Gibbs/VB form used throughout spec §4.4.
type White struct {
	C, S   float64 // current posterior shape/scale
	c0, s0 float64 // prior shape/scale (fixed hyperparameters)
}

// NewWhite builds a White posterior initialized at its own prior (c0, s0).
func NewWhite(c0, s0 float64) *White {
	return &White{C: c0, S: s0, c0: c0, s0: s0}
}

// ExpectedPrecision returns E[phi] = C*S, the Gamma mean.
func (w *White) ExpectedPrecision() float64 { return w.C * w.S }

// Update applies spec §4.4's White update rules:
//
//	s <- 1 / (1/2*||r||^2 + 1/2*tr(J.Sigma.J^T) + 1/s0)
//	c <- c0 + T/2
func (w *White) Update(residual []float64, traceJSigmaJt float64) error {
	ss := sumSquares(residual)
	denom := 0.5*ss + 0.5*traceJSigmaJt + 1/w.s0
	if denom <= 0 || math.IsNaN(denom) {
		return ErrDegenerateUpdate
	}
	w.S = 1 / denom
	w.C = w.c0 + float64(len(residual))/2
	return nil
}

// FreeEnergyContribution returns the closed-form Gaussian/Gamma free-energy
// terms attributable to the noise model: the expected log-likelihood of
// the data under the current residual, plus the Gamma KL term
// E[log p(phi)] - E[log q(phi)].
func (w *White) FreeEnergyContribution(residual []float64, traceJSigmaJt float64) (float64, error) {
	T := float64(len(residual))
	if T == 0 {
		return 0, ErrDimensionMismatch
	}
	ss := sumSquares(residual)
	expLogPhi := mathext.Digamma(w.C) + math.Log(w.S)

	// E[log p(y|theta,phi)] for a linear-Gaussian model with diagonal
	// precision phi*I: -T/2*log(2pi) + T/2*E[log phi] - E[phi]/2*(||r||^2+tr(JSigmaJ^T))
	expLogLik := -0.5*T*math.Log(2*math.Pi) + 0.5*T*expLogPhi - 0.5*w.ExpectedPrecision()*(ss+traceJSigmaJt)

	kl := gammaKL(w.c0, w.s0, w.C, w.S)

	return expLogLik - kl, nil
}

// Clone returns a deep copy (White has no pointer-shared state beyond
// scalars, so this is a plain value copy boxed back into the interface).
func (w *White) Clone() Posterior {
	cp := *w
	return &cp
}

func sumSquares(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return s
}

// gammaKL returns KL(Gamma(c,s) || Gamma(c0,s0)), the standard closed form:
//
//	KL = (c-c0)*digamma(c) - lgamma(c) + lgamma(c0) + c0*(log(s0)-log(s)) + c*(s-s0)/s0
func gammaKL(c0, s0, c, s float64) float64 {
	lgc, _ := math.Lgamma(c)
	lgc0, _ := math.Lgamma(c0)
	return (c-c0)*mathext.Digamma(c) - lgc + lgc0 + c0*(math.Log(s0)-math.Log(s)) + c*(s-s0)/s0
}
