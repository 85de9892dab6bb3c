package noise

// Posterior is the noise model's q(phi) (and, for AR(1), the coupled
// AR-coefficient posterior). residual is y - yhat at the current
// linearisation point; traceJSigmaJt is tr(J*Sigma*J^T) (spec §4.4's
// "tr(J.Sigma.J^T)" term).
type Posterior interface {
	// ExpectedPrecision returns E[phi] under the current Gamma posterior.
	ExpectedPrecision() float64
	// Update advances the posterior given the current residual and
	// tr(J*Sigma*J^T). Returns a non-nil error that is non-fatal
	// (ErrARDiverged) or fatal (ErrDegenerateUpdate) depending on kind.
	Update(residual []float64, traceJSigmaJt float64) error
	// FreeEnergyContribution returns this noise model's contribution to
	// the per-voxel free energy: E[log p(y|theta,phi)] + E[log p(phi)] -
	// E[log q(phi)] (spec §4.6 step 7), evaluated at the posterior's
	// current state against residual/traceJSigmaJt.
	FreeEnergyContribution(residual []float64, traceJSigmaJt float64) (float64, error)
	// Clone returns a deep copy, used by package vb to snapshot state
	// before a trial step that might be reverted (spec §4.6 tie-break a).
	Clone() Posterior
}
