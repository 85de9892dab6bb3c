// Package convergence implements the per-voxel iteration-termination
// policies of spec §4.7: maxits (hard cap), fchange (|deltaF| < epsilon),
// trialmode (fchange with up to k reverts), and lm (Levenberg-like step
// damping on reverts). A Monitor is stateful per voxel and is created
// fresh for each voxel's VB run.
package convergence
