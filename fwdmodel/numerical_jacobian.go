package fwdmodel

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// NumericalJacobian fills dst (T x P) with the central-difference Jacobian
// of eval at theta, the way package fwdmodel's reference models compute
// their Jacobian when they have no closed form (spec §4.5: "numerical if
// not analytic"), grounded on the EKF propagation-Jacobian pattern of
// fd.Jacobian(dst, f(y,x), x, settings).
func NumericalJacobian(dst *mat.Dense, eval func(theta []float64) ([]float64, error), theta []float64) error {
	var evalErr error
	f := func(y, x []float64) {
		out, err := eval(x)
		if err != nil {
			evalErr = err
			return
		}
		copy(y, out)
	}
	fd.Jacobian(dst, f, theta, &fd.JacobianSettings{
		Formula:    fd.Central,
		Concurrent: true,
	})
	return evalErr
}
