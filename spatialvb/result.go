package spatialvb

import "github.com/fabber-go/fabber/vb"

// Result is the outcome of a full spatial VB run: every voxel's final VB
// State, the per-parameter hyperparameters the spatial priors converged
// to (non-spatial parameters keep their seed values), and the voxels
// flagged failed.
type Result struct {
	States          []*vb.State
	Rho, Delta      []float64 // length P
	OuterIterations int
	FreeEnergy      float64 // sum of per-voxel free energy at the final sweep
	Failed          []int   // voxel indices marked Failed
}
