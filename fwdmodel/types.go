package fwdmodel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/transform"
)

// ForwardModel is the per-voxel forward model contract of spec §4.5.
// All methods operate in model space; package vb is responsible for the
// fabber<->model space chain rule (spec §4.6 step 2).
type ForwardModel interface {
	// NumParams returns P, the parameter count.
	NumParams() int
	// ParamNames returns the P display names, in order.
	ParamNames() []string
	// NumTimepoints returns T, the prediction/Jacobian row count.
	NumTimepoints() int
	// HardcodedInitial returns this model's built-in initial (mean, var)
	// per parameter, in model space.
	HardcodedInitial() []transform.DistParams
	// Evaluate returns f(theta): the length-T prediction.
	Evaluate(theta []float64) ([]float64, error)
	// Jacobian returns the T x P Jacobian d f / d theta at theta.
	Jacobian(theta []float64) (*mat.Dense, error)
}

// Factory builds a ForwardModel from a generic string-keyed option map
// (the CLI's --key=value surface, already stripped of the leading
// "--"), satisfying spec §6's "--loadmodels" / model-registry contract.
type Factory func(options map[string]string) (ForwardModel, error)
