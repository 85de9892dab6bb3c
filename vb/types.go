package vb

import (
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/mvn"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/transform"
)

// Config bundles everything a voxel's VB run needs that does not change
// within a sweep: the forward model, each parameter's Transform and
// Prior variants, and a fresh-noise-posterior factory.
type Config struct {
	Model           fwdmodel.ForwardModel
	Transforms      []transform.Transform  // length P
	Priors          []prior.ParameterPrior // length P
	NewNoise        func() noise.Posterior
	MaxRevertTrials int
}

// State is one voxel's mutable VB state, carried across outer
// iterations by package spatialvb.
type State struct {
	Posterior  *mvn.MVN
	Noise      noise.Posterior
	FreeEnergy float64
	Iterations int
	Failed     bool
}

// clone returns a deep copy of s's posterior, noise posterior, free
// energy and iteration count; Failed is not copied.
func (s *State) clone() *State {
	meanCopy := append([]float64(nil), s.Posterior.Mean()...)
	cov, err := s.Posterior.Covariance()
	if err != nil {
		// Covariance is always available once a State has been
		// constructed by Init or committed by Run; a failure here
		// indicates the caller kept using a Failed state.
		panic("vb: clone of a State with no valid covariance: " + err.Error())
	}
	posterior, err := mvn.NewFromCovariance(meanCopy, cov)
	if err != nil {
		panic("vb: clone: " + err.Error())
	}
	return &State{
		Posterior:  posterior,
		Noise:      s.Noise.Clone(),
		FreeEnergy: s.FreeEnergy,
		Iterations: s.Iterations,
	}
}
