// Package fwdmodel implements the ForwardModel contract of spec §4.5:
// evaluate f(theta) and its Jacobian for a voxel, plus the model's
// parameter names, count, and hard-coded initial (model-space) prior and
// posterior. Linear, polynomial, and trivial reference models are
// provided; any model may fall back to NumericalJacobian (central
// differences via gonum.org/v1/gonum/diff/fd) instead of an analytic one.
package fwdmodel
