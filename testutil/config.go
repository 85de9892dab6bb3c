package testutil

import "math/rand"

// gridConfig is the resolved configuration a GridOption mutates.
type gridConfig struct {
	rng *rand.Rand // nil means no stochastic coordinates are requested
}

// GridOption configures NoisyTimeseries, mirroring the teacher builder
// package's functional-option-over-immutable-config shape.
type GridOption func(*gridConfig)

// WithSeed freezes any stochastic element of a grid/timeseries builder
// (currently only NoisyTimeseries) to a deterministic *rand.Rand.
func WithSeed(seed int64) GridOption {
	return func(cfg *gridConfig) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

func newGridConfig(opts ...GridOption) gridConfig {
	var cfg gridConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
