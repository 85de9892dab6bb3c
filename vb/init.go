package vb

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/mvn"
	"github.com/fabber-go/fabber/transform"
)

// Init builds the starting State for one voxel from cfg's forward
// model's hard-coded initial (mean, var) per parameter, mapped from
// model space to fabber space via each parameter's Transform (spec §3:
// "Posteriors are allocated per voxel at initialisation from the
// model's hard-coded distributions").
func Init(cfg Config) (*State, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	p := cfg.Model.NumParams()
	initial := cfg.Model.HardcodedInitial()
	mean := make([]float64, p)
	cov := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		fabber := transform.FabberParams(cfg.Transforms[i], initial[i])
		mean[i] = fabber.Mean
		cov.SetSym(i, i, fabber.Var)
	}

	posterior, err := mvn.NewFromCovariance(mean, cov)
	if err != nil {
		return nil, fmt.Errorf("vb: Init: %w", err)
	}

	return &State{
		Posterior: posterior,
		Noise:     cfg.NewNoise(),
	}, nil
}

func validate(cfg Config) error {
	p := cfg.Model.NumParams()
	if len(cfg.Transforms) != p || len(cfg.Priors) != p {
		return ErrDimensionMismatch
	}
	return nil
}
