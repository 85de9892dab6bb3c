package nlls

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/convergence"
)

// Run fits theta by plain Gauss-Newton against observation y: each
// iteration first tries the full step and halves it on every revert,
// with accept/revert/divergence decided by a convergence lm-policy
// Monitor on f = -SSE.
// It carries no priors and no free-energy bookkeeping: --method=nlls is
// a point-estimate fallback, not a Bayesian fit.
func Run(cfg Config, y []float64) (*State, error) {
	p := cfg.Model.NumParams()
	if len(y) != cfg.Model.NumTimepoints() {
		return nil, ErrDimensionMismatch
	}
	theta := initialTheta(cfg)
	if len(theta) != p {
		return nil, ErrDimensionMismatch
	}

	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	maxIters := cfg.MaxIters
	if maxIters <= 0 {
		maxIters = defaultMaxIters
	}
	maxTrials := cfg.MaxTrials
	if maxTrials <= 0 {
		maxTrials = defaultMaxTrials
	}
	monitor := convergence.NewLM(tolerance, maxIters, maxTrials)

	sse, err := sumSquares(cfg, theta, y)
	if err != nil {
		return nil, err
	}
	iterations := 0

	for {
		resid, jac, err := residualAndJacobian(cfg, theta, y)
		if err != nil {
			return nil, err
		}
		delta, err := gaussNewtonStep(jac, resid)
		if err != nil {
			return nil, err
		}

		stepScale := 1.0
		accepted := false
		for trial := 0; trial <= maxTrials; trial++ {
			trialTheta := addScaled(theta, delta, stepScale)
			trialSSE, err := sumSquares(cfg, trialTheta, y)
			if err != nil {
				return nil, err
			}

			status := monitor.Check(-trialSSE)
			switch status {
			case convergence.Continue, convergence.Converged:
				theta = trialTheta
				sse = trialSSE
				iterations++
				accepted = true
			case convergence.Reverted:
				stepScale /= 2
				continue
			case convergence.Diverged:
				return nil, ErrDiverged
			}
			if status == convergence.Converged {
				return &State{Theta: theta, SSE: sse, Iterations: iterations}, nil
			}
			break
		}
		if !accepted {
			return nil, ErrDiverged
		}
	}
}

func initialTheta(cfg Config) []float64 {
	if cfg.Initial != nil {
		out := make([]float64, len(cfg.Initial))
		copy(out, cfg.Initial)
		return out
	}
	init := cfg.Model.HardcodedInitial()
	out := make([]float64, len(init))
	for i, d := range init {
		out[i] = d.Mean
	}
	return out
}

func sumSquares(cfg Config, theta, y []float64) (float64, error) {
	pred, err := cfg.Model.Evaluate(theta)
	if err != nil {
		return 0, fmt.Errorf("nlls: Evaluate: %w", err)
	}
	sse := 0.0
	for i := range y {
		d := y[i] - pred[i]
		sse += d * d
	}
	return sse, nil
}

func residualAndJacobian(cfg Config, theta, y []float64) ([]float64, *mat.Dense, error) {
	pred, err := cfg.Model.Evaluate(theta)
	if err != nil {
		return nil, nil, fmt.Errorf("nlls: Evaluate: %w", err)
	}
	jac, err := cfg.Model.Jacobian(theta)
	if err != nil {
		return nil, nil, fmt.Errorf("nlls: Jacobian: %w", err)
	}
	resid := make([]float64, len(y))
	for i := range y {
		resid[i] = y[i] - pred[i]
	}
	return resid, jac, nil
}

// gaussNewtonStep solves the normal equations (J^T J) delta = J^T resid.
func gaussNewtonStep(jac *mat.Dense, resid []float64) ([]float64, error) {
	t, p := jac.Dims()
	r := mat.NewVecDense(t, resid)

	var jtj mat.SymDense
	jtj.SymOuterK(1, jac.T())

	var jtr mat.VecDense
	jtr.MulVec(jac.T(), r)

	var chol mat.Cholesky
	if ok := chol.Factorize(&jtj); !ok {
		return nil, ErrSingularNormalEquations
	}
	rhsData := make([]float64, p)
	for i := 0; i < p; i++ {
		rhsData[i] = jtr.AtVec(i)
	}
	rhs := mat.NewDense(p, 1, rhsData)
	var deltaDense mat.Dense
	if err := chol.SolveTo(&deltaDense, rhs); err != nil {
		return nil, fmt.Errorf("nlls: gaussNewtonStep: %w", ErrSingularNormalEquations)
	}
	delta := make([]float64, p)
	mat.Col(delta, 0, &deltaDense)
	return delta, nil
}

func addScaled(theta, delta []float64, scale float64) []float64 {
	out := make([]float64, len(theta))
	for i := range out {
		out[i] = theta[i] + scale*delta[i]
	}
	return out
}
