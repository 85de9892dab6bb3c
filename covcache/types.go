package covcache

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Metric selects the distance function used to build D.
type Metric int

const (
	// Euclidean is the straight-line lattice distance.
	Euclidean Metric = iota
	// SquaredEuclidean skips the square root.
	SquaredEuclidean
	// Manhattan is the L1 (taxicab) lattice distance.
	Manhattan
)

// deltaKeyScale canonicalizes a float64 delta into an integer cache key:
// deltas that round to the same multiple of 1e-6 share a cache entry, per
// the "canonicalized-key caching" design note.
const deltaKeyScale = 1e6

// ciCodistEntry memoises K(delta)^-1 * C * K(delta)^-1 and
// tr(K(delta)^-1 * C) for the C matrix identity (by pointer) it was
// computed against; a different C pointer invalidates it, matching the
// "recomputed when C changes" invariant of spec §3.
type ciCodistEntry struct {
	cIdentity *mat.SymDense
	product   *mat.SymDense
	trace     float64
}

// Cache owns the voxel distance matrix D and the K(delta)^-1 /
// K(delta)^-1*C*K(delta)^-1 memoisation tables of spec §4.9. Safe for
// concurrent reads; writes (new delta insertions) are serialized under
// mu, and existing entries are never mutated once inserted.
type Cache struct {
	mu sync.RWMutex

	v      int
	metric Metric
	d      *mat.SymDense

	kinv     map[int64]*mat.SymDense
	ciCodist map[int64]*ciCodistEntry
}
