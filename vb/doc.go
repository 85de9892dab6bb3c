// Package vb implements spec §4.6: the per-voxel variational Bayes
// coordinate-ascent update. Run performs the inner iteration — lift mu
// to model space, linearise the forward model, form the effective prior
// from §4.3's contributions, update the posterior precision/mean, update
// the noise posterior, compute free energy, and consult a convergence
// monitor — until convergence, divergence, or the monitor's iteration
// cap. A voxel is independent of every other voxel within a sweep;
// package spatialvb owns cross-voxel coupling and calls Run once per
// voxel per outer iteration.
package vb
