// Package noise implements the observation-noise posterior q(phi) of spec
// §4.4: White (a Gamma posterior over precision) and AR(1) (White plus a
// Gaussian-posterior autoregressive coefficient that whitens the residual
// before the Gamma update).
package noise
