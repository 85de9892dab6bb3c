// Package spatialvb implements spec §4.10's spatial VB coordinator: the
// outer loop that re-estimates each spatially-configured parameter's
// (rho, delta) hyperparameters between sweeps of per-voxel VB updates
// (package vb), coupling voxels through the neighbour graph (package
// neighbours) and the covariance cache (package covcache).
package spatialvb
