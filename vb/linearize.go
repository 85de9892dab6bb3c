package vb

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/prior"
)

// step holds everything computed by linearising the forward model at
// the voxel's current posterior mean and solving the resulting linear
// system once; Run may then re-evaluate the residual/free energy at a
// damped candidate mean without re-linearising.
type step struct {
	prevMu  []float64
	yhat    []float64
	jFabber *mat.Dense // T x P, chain-ruled into fabber space
	mu0     []float64
	lambda0 []float64
	muRaw   []float64
	sigma   *mat.SymDense
}

// computeStep implements spec §4.6 steps 1-5: lift to model space,
// linearise, form the effective prior, and solve for the updated
// posterior precision/mean.
func computeStep(cfg Config, state *State, y []float64, priorInputs []prior.Inputs) (*step, error) {
	mu := state.Posterior.Mean()
	p := len(mu)

	prevSigma, err := state.Posterior.Covariance()
	if err != nil {
		return nil, err
	}

	theta := make([]float64, p)
	for i := 0; i < p; i++ {
		theta[i] = cfg.Transforms[i].ToModel(mu[i])
	}

	yhat, err := cfg.Model.Evaluate(theta)
	if err != nil {
		return nil, fmt.Errorf("vb: Evaluate: %w", err)
	}
	jModel, err := cfg.Model.Jacobian(theta)
	if err != nil {
		return nil, fmt.Errorf("vb: Jacobian: %w", err)
	}

	t := len(yhat)
	jFabber := mat.NewDense(t, p, nil)
	for i := 0; i < p; i++ {
		deriv := cfg.Transforms[i].Derivative(mu[i])
		for row := 0; row < t; row++ {
			jFabber.Set(row, i, jModel.At(row, i)*deriv)
		}
	}

	mu0 := make([]float64, p)
	lambda0 := make([]float64, p)
	for i := 0; i < p; i++ {
		in := priorInputs[i]
		in.PosteriorMean = mu[i]
		in.PosteriorVar = prevSigma.At(i, i)
		contribution, err := cfg.Priors[i].Combine(in)
		if err != nil {
			return nil, fmt.Errorf("vb: prior combine param %d: %w", i, err)
		}
		mu0[i] = contribution.Mu0
		lambda0[i] = contribution.Lambda0
	}

	ephi := state.Noise.ExpectedPrecision()

	var jtj mat.Dense
	jtj.Mul(jFabber.T(), jFabber)

	lambda := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			val := ephi * jtj.At(i, j)
			if i == j {
				val += lambda0[i]
			}
			lambda.SetSym(i, j, val)
		}
	}

	// innov = y - yhat + J*mu
	jMu := make([]float64, t)
	muVec := mat.NewVecDense(p, mu)
	var jMuVec mat.VecDense
	jMuVec.MulVec(jFabber, muVec)
	mat.Col(jMu, 0, &jMuVec)

	innov := make([]float64, t)
	for row := 0; row < t; row++ {
		innov[row] = y[row] - yhat[row] + jMu[row]
	}
	innovVec := mat.NewVecDense(t, innov)

	var jtInnov mat.VecDense
	jtInnov.MulVec(jFabber.T(), innovVec)

	rhs := make([]float64, p)
	for i := 0; i < p; i++ {
		rhs[i] = lambda0[i]*mu0[i] + ephi*jtInnov.AtVec(i)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(lambda); !ok {
		return nil, ErrVoxelFailed
	}
	sigma := mat.NewSymDense(p, nil)
	if err := chol.InverseTo(sigma); err != nil {
		return nil, fmt.Errorf("vb: Lambda inverse: %w", err)
	}

	rhsCol := mat.NewDense(p, 1, rhs)
	var muRawDense mat.Dense
	if err := chol.SolveTo(&muRawDense, rhsCol); err != nil {
		return nil, fmt.Errorf("vb: solve for mu: %w", err)
	}
	muRaw := make([]float64, p)
	mat.Col(muRaw, 0, &muRawDense)

	return &step{
		prevMu:  mu,
		yhat:    yhat,
		jFabber: jFabber,
		mu0:     mu0,
		lambda0: lambda0,
		muRaw:   muRaw,
		sigma:   sigma,
	}, nil
}

// residualAt returns y - yhat - J*(candidateMu - prevMu): the residual
// at a (possibly damped) candidate mean, using the Jacobian already
// linearised at prevMu rather than re-evaluating the nonlinear model.
func residualAt(y, candidateMu []float64, s *step) ([]float64, error) {
	p := len(candidateMu)
	delta := make([]float64, p)
	for i := 0; i < p; i++ {
		delta[i] = candidateMu[i] - s.prevMu[i]
	}
	deltaVec := mat.NewVecDense(p, delta)
	var jDelta mat.VecDense
	jDelta.MulVec(s.jFabber, deltaVec)

	t := len(s.yhat)
	residual := make([]float64, t)
	for row := 0; row < t; row++ {
		residual[row] = y[row] - s.yhat[row] - jDelta.AtVec(row)
	}
	return residual, nil
}

// traceJSigmaJT returns tr(J*Sigma*J^T).
func traceJSigmaJT(j *mat.Dense, sigma *mat.SymDense) float64 {
	var jSigma mat.Dense
	jSigma.Mul(j, sigma)
	var jSigmaJt mat.Dense
	jSigmaJt.Mul(&jSigma, j.T())
	return mat.Trace(&jSigmaJt)
}
