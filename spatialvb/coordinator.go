package spatialvb

import (
	"fmt"

	"github.com/fabber-go/fabber/covcache"
	"github.com/fabber-go/fabber/neighbours"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
)

// Coordinator owns the per-run state of spec §4.10's outer loop: the
// neighbour graph and covariance cache built once at construction, and
// the current (rho, delta) per spatially-configured parameter.
type Coordinator struct {
	cfg   Config
	graph *neighbours.Graph
	cache *covcache.Cache

	p             int
	spatialKind   []prior.Kind // zero value (KindNormal) when hasSpatial[p] is false
	hasSpatial    []bool
	hasImage      []bool
	expectedCount int // lattice-expected |N1(v)| for an interior voxel

	rho, delta []float64
}

// New builds a Coordinator for cfg: the neighbour graph, the voxel
// distance-matrix cache, and the seeded (rho, delta) per spatial
// parameter (spec §4.10 init).
func New(cfg Config) (*Coordinator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = runlog.Noop{}
	}

	graph, err := neighbours.Build(cfg.Grid, cfg.SpatialDims)
	if err != nil {
		return nil, fmt.Errorf("spatialvb: New: %w", err)
	}
	cache, err := covcache.Build(cfg.Grid, cfg.Metric)
	if err != nil {
		return nil, fmt.Errorf("spatialvb: New: %w", err)
	}

	p := cfg.Model.NumParams()
	spatialKind := make([]prior.Kind, p)
	hasSpatial := make([]bool, p)
	hasImage := make([]bool, p)
	rho := make([]float64, p)
	delta := make([]float64, p)
	for i := 0; i < p; i++ {
		for _, variant := range cfg.Priors[i].Variants {
			if variant.Kind().IsSpatial() {
				spatialKind[i] = variant.Kind()
				hasSpatial[i] = true
			}
			if variant.Kind() == prior.KindImage {
				hasImage[i] = true
			}
		}
		rho[i] = defaultRhoSeed
		delta[i] = defaultDeltaSeed
		if i < len(cfg.FixedRho) && cfg.FixedRho[i] > 0 {
			rho[i] = cfg.FixedRho[i]
		}
		if i < len(cfg.FixedDelta) && cfg.FixedDelta[i] > 0 {
			delta[i] = cfg.FixedDelta[i]
		}
	}

	return &Coordinator{
		cfg:           cfg,
		graph:         graph,
		cache:         cache,
		p:             p,
		spatialKind:   spatialKind,
		hasSpatial:    hasSpatial,
		hasImage:      hasImage,
		expectedCount: expectedNeighbourCount(cfg.SpatialDims),
		rho:           rho,
		delta:         delta,
	}, nil
}

func expectedNeighbourCount(dims neighbours.SpatialDims) int {
	switch dims {
	case neighbours.Dims2:
		return 4
	case neighbours.Dims3:
		return 6
	default:
		return 0
	}
}

func validateConfig(cfg Config) error {
	if cfg.Grid == nil || cfg.Grid.Len() == 0 {
		return ErrNoVoxels
	}
	p := cfg.Model.NumParams()
	if len(cfg.Transforms) != p || len(cfg.Priors) != p {
		return ErrDimensionMismatch
	}
	return nil
}
