// Package mvn implements the multivariate Gaussian (MVN) used for both the
// per-voxel parameter posterior q(theta) and the various prior contributions
// that feed it.
//
// What:
//   - Stores a mean vector and either a covariance or precision matrix,
//     converting lazily and caching the other representation until the
//     next mutation invalidates it.
//   - Provides Concatenate (block-diagonal combine of independent MVNs),
//     Marginalise (row/col subset), Sample, LogDet and KLDivergence.
//
// Why:
//   - The VB update (spec §4.6) alternates between needing Sigma (for the
//     noise free-energy term) and Lambda (for the coordinate-ascent
//     update itself); recomputing on every access would dominate runtime
//     on large voxel counts, so the duality is cached.
//
// Numerical invariants:
//   - Any covariance written back is first symmetrized via (M+M^T)/2.
//   - A Cholesky factorization failure is surfaced as an error and never
//     silently coerced to a nearby SPD matrix; callers (package vb) are
//     responsible for the voxel-failure policy of spec §7.
package mvn
