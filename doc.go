// Package fabber (github.com/fabber-go/fabber) is a Bayesian
// variational-Bayes model-fitting engine for multi-voxel imaging
// timeseries.
//
// It brings together:
//
//   - Forward models: pluggable per-voxel prediction functions with
//     analytic or numerical Jacobians (package fwdmodel)
//   - Priors and transforms: Normal/ARD/Image/spatial MRF prior
//     variants over a fabber<->model space chain rule (packages prior,
//     transform)
//   - Per-voxel VB inference: coordinate-ascent update of an MVN
//     posterior and a noise posterior to a free-energy fixed point
//     (package vb)
//   - Spatial coordination: a neighbour-graph-driven outer loop that
//     re-estimates each spatial prior's smoothness and precision
//     hyperparameters across the whole voxel grid (package spatialvb)
//
// Under the hood:
//
//	mvn/, transform/, prior/, noise/, fwdmodel/ — the per-voxel model
//	convergence/, covcache/, neighbours/        — inference machinery
//	vb/, spatialvb/, nlls/                      — the three --method= engines
//	config/, dataio/, runlog/, modelstore/      — CLI-facing plumbing
//	cmd/fabber/                                 — the command-line entrypoint
package fabber
