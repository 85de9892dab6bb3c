package covcache

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/voxelgrid"
)

// Build computes the V x V distance matrix D once, by the chosen
// metric, over every voxel pair in grid, and returns an empty Cache
// ready to serve Cinv/CiCodistCi requests.
func Build(grid *voxelgrid.Grid, metric Metric) (*Cache, error) {
	v := grid.Len()
	if v == 0 {
		return nil, ErrEmptyGrid
	}

	coords := grid.Coords()
	d := mat.NewSymDense(v, nil)
	for i := 0; i < v; i++ {
		for j := i; j < v; j++ {
			dist, err := distance(coords[i], coords[j], metric)
			if err != nil {
				return nil, fmt.Errorf("covcache: Build: %w", err)
			}
			d.SetSym(i, j, dist)
		}
	}

	return &Cache{
		v:        v,
		metric:   metric,
		d:        d,
		kinv:     make(map[int64]*mat.SymDense),
		ciCodist: make(map[int64]*ciCodistEntry),
	}, nil
}

func distance(a, b voxelgrid.Coord, metric Metric) (float64, error) {
	dx, dy, dz := float64(a.X-b.X), float64(a.Y-b.Y), float64(a.Z-b.Z)
	switch metric {
	case Euclidean:
		return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
	case SquaredEuclidean:
		return dx*dx + dy*dy + dz*dz, nil
	case Manhattan:
		return math.Abs(dx) + math.Abs(dy) + math.Abs(dz), nil
	default:
		return 0, ErrUnknownMetric
	}
}

// D returns the cache's distance matrix. Callers must not mutate it.
func (c *Cache) D() *mat.SymDense {
	return c.d
}

// Len returns the voxel count V this cache was built over.
func (c *Cache) Len() int {
	return c.v
}

func deltaKey(delta float64) int64 {
	return int64(math.Round(delta * deltaKeyScale))
}

// Cinv returns K(delta)^-1 where K_ij = exp(-D_ij/delta), computing and
// caching it on first request for this delta. Returns
// ErrNotPositiveDefinite if K(delta)'s Cholesky factorization fails.
func (c *Cache) Cinv(delta float64) (*mat.SymDense, error) {
	if delta <= 0 {
		return nil, ErrNonPositiveDelta
	}
	key := deltaKey(delta)

	c.mu.RLock()
	if cached, ok := c.kinv[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	k := mat.NewSymDense(c.v, nil)
	for i := 0; i < c.v; i++ {
		for j := i; j < c.v; j++ {
			k.SetSym(i, j, math.Exp(-c.d.At(i, j)/delta))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return nil, fmt.Errorf("covcache: Cinv(delta=%g): %w", delta, ErrNotPositiveDefinite)
	}
	kinv := mat.NewSymDense(c.v, nil)
	if err := chol.InverseTo(kinv); err != nil {
		return nil, fmt.Errorf("covcache: Cinv(delta=%g): inverse: %w", delta, err)
	}
	symmetrize(kinv)

	c.mu.Lock()
	c.kinv[key] = kinv
	c.mu.Unlock()

	return kinv, nil
}

// CiCodistCi returns (K(delta)^-1 * C * K(delta)^-1, tr(K(delta)^-1 * C))
// for the supplied spatial-covariance-ratio matrix C, caching the result
// keyed by delta and recomputing it if C has changed (by identity) since
// the last call for this delta.
func (c *Cache) CiCodistCi(delta float64, cMat *mat.SymDense) (*mat.SymDense, float64, error) {
	if cMat.SymmetricDim() != c.v {
		return nil, 0, ErrDimensionMismatch
	}
	kinv, err := c.Cinv(delta)
	if err != nil {
		return nil, 0, err
	}
	key := deltaKey(delta)

	c.mu.RLock()
	entry, ok := c.ciCodist[key]
	if ok && entry.cIdentity == cMat {
		product, trace := entry.product, entry.trace
		c.mu.RUnlock()
		return product, trace, nil
	}
	c.mu.RUnlock()

	var tmp mat.Dense
	tmp.Mul(kinv, cMat)

	var prodDense mat.Dense
	prodDense.Mul(&tmp, kinv)
	product := mat.NewSymDense(c.v, nil)
	for i := 0; i < c.v; i++ {
		for j := i; j < c.v; j++ {
			product.SetSym(i, j, prodDense.At(i, j))
		}
	}

	trace := mat.Trace(&tmp)

	c.mu.Lock()
	c.ciCodist[key] = &ciCodistEntry{cIdentity: cMat, product: product, trace: trace}
	c.mu.Unlock()

	return product, trace, nil
}

// GetCachedInRange returns a delta already present in the K^-1 cache
// that falls within [lower, upper], used to seed local searches, and
// false if none does.
func (c *Cache) GetCachedInRange(lower, upper float64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for key := range c.kinv {
		delta := float64(key) / deltaKeyScale
		if delta >= lower && delta <= upper {
			return delta, true
		}
	}
	return 0, false
}

// Reset clears every cached entry. The distance matrix D is untouched.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinv = make(map[int64]*mat.SymDense)
	c.ciCodist = make(map[int64]*ciCodistEntry)
}

func symmetrize(m *mat.SymDense) {
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (m.At(i, j) + m.At(j, i)) / 2
			m.SetSym(i, j, avg)
		}
	}
}
