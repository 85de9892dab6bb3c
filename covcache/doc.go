// Package covcache implements spec §4.9: the voxel distance matrix D,
// a memoising cache of K(δ)⁻¹ and K(δ)⁻¹·C·K(δ)⁻¹ keyed by δ, and the
// two δ/ρ search routines spatialvb drives from it — OptimizeSmoothingScale
// for the Sahani-style Spatial M/m update and OptimizeEvidence for the
// Penny-style Spatial P/p update.
//
// Entries are immutable once inserted (per the "cache is cleared only
// by explicit reset" invariant of spec §3); Cache is safe for concurrent
// readers with a single writer, grounded on the teacher's graph/core
// sync.RWMutex discipline and the retrieval pack's Gaussian-process file
// ("bayesian-gaussian_process.go") Cholesky-based kernel-matrix pattern.
package covcache
