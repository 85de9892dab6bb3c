package mvn

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// repState tracks which of {covariance, precision} is authoritative, per
// the "lazy covariance/precision duality" design note: a small explicit
// state machine rather than eager recomputation on every mutation.
type repState int

const (
	covCurrent repState = iota
	precCurrent
	bothCurrent
)

// MVN is a multivariate Gaussian with a dual mean/covariance/precision
// representation. Zero value is not usable; construct via NewFromCovariance
// or NewFromPrecision.
type MVN struct {
	mean  *mat.VecDense
	cov   *mat.SymDense
	prec  *mat.SymDense
	state repState
}

// NewFromCovariance builds an MVN with mean and covariance cov (copied and
// symmetrized). Returns ErrDimensionMismatch if cov's dimension disagrees
// with len(mean).
func NewFromCovariance(mean []float64, cov mat.Symmetric) (*MVN, error) {
	if len(mean) == 0 {
		return nil, ErrEmptyDimension
	}
	if cov.SymmetricDim() != len(mean) {
		return nil, ErrDimensionMismatch
	}
	m := &MVN{mean: mat.NewVecDense(len(mean), append([]float64(nil), mean...))}
	m.cov = symmetrize(cov)
	m.state = covCurrent
	return m, nil
}

// NewFromPrecision builds an MVN with mean and precision prec (copied and
// symmetrized).
func NewFromPrecision(mean []float64, prec mat.Symmetric) (*MVN, error) {
	if len(mean) == 0 {
		return nil, ErrEmptyDimension
	}
	if prec.SymmetricDim() != len(mean) {
		return nil, ErrDimensionMismatch
	}
	m := &MVN{mean: mat.NewVecDense(len(mean), append([]float64(nil), mean...))}
	m.prec = symmetrize(prec)
	m.state = precCurrent
	return m, nil
}

func symmetrize(m mat.Symmetric) *mat.SymDense {
	n := m.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := (m.At(i, j) + m.At(j, i)) / 2
			out.SetSym(i, j, v)
		}
	}
	return out
}

// Dim returns the dimension of this MVN.
func (m *MVN) Dim() int { return m.mean.Len() }

// Mean returns a copy of the mean vector.
func (m *MVN) Mean() []float64 {
	out := make([]float64, m.mean.Len())
	mat.Col(out, 0, m.mean)
	return out
}

// SetMean overwrites the mean in place; does not affect the cached
// covariance/precision representations.
func (m *MVN) SetMean(mean []float64) error {
	if len(mean) != m.Dim() {
		return ErrDimensionMismatch
	}
	m.mean = mat.NewVecDense(len(mean), append([]float64(nil), mean...))
	return nil
}

// SetCovariance overwrites the covariance, symmetrizing first, and
// invalidates the cached precision.
func (m *MVN) SetCovariance(cov mat.Symmetric) error {
	if cov.SymmetricDim() != m.Dim() {
		return ErrDimensionMismatch
	}
	m.cov = symmetrize(cov)
	m.prec = nil
	m.state = covCurrent
	return nil
}

// SetPrecision overwrites the precision, symmetrizing first, and
// invalidates the cached covariance.
func (m *MVN) SetPrecision(prec mat.Symmetric) error {
	if prec.SymmetricDim() != m.Dim() {
		return ErrDimensionMismatch
	}
	m.prec = symmetrize(prec)
	m.cov = nil
	m.state = precCurrent
	return nil
}

// Covariance returns the covariance, inverting and caching from the
// precision if that was the only authoritative representation.
func (m *MVN) Covariance() (*mat.SymDense, error) {
	if m.state == precCurrent || m.cov == nil {
		cov, err := invertSPD(m.prec)
		if err != nil {
			return nil, err
		}
		m.cov = cov
		m.state = bothCurrent
	}
	return m.cov, nil
}

// Precision returns the precision, inverting and caching from the
// covariance if that was the only authoritative representation.
func (m *MVN) Precision() (*mat.SymDense, error) {
	if m.state == covCurrent || m.prec == nil {
		prec, err := invertSPD(m.cov)
		if err != nil {
			return nil, err
		}
		m.prec = prec
		m.state = bothCurrent
	}
	return m.prec, nil
}

func invertSPD(m *mat.SymDense) (*mat.SymDense, error) {
	n := m.SymmetricDim()
	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return nil, ErrNotPositiveDefinite
	}
	inv := mat.NewSymDense(n, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, ErrNotPositiveDefinite
	}
	return inv, nil
}

// LogDet returns the log-determinant of the covariance matrix, computed via
// the Cholesky factor: log|Sigma| = 2*sum(log(diag(L))).
func (m *MVN) LogDet() (float64, error) {
	cov, err := m.Covariance()
	if err != nil {
		return 0, err
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return 0, ErrNotPositiveDefinite
	}
	return chol.LogDet(), nil
}

// Concatenate combines this MVN and others into a single block-diagonal MVN:
// means are appended, covariances placed on the block diagonal with zero
// cross-covariance (the "independent MVNs" case spec §4.1 requires).
func (m *MVN) Concatenate(others ...*MVN) (*MVN, error) {
	all := append([]*MVN{m}, others...)
	total := 0
	for _, o := range all {
		total += o.Dim()
	}
	mean := make([]float64, 0, total)
	cov := mat.NewSymDense(total, nil)
	offset := 0
	for _, o := range all {
		oc, err := o.Covariance()
		if err != nil {
			return nil, err
		}
		mean = append(mean, o.Mean()...)
		n := o.Dim()
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				cov.SetSym(offset+i, offset+j, oc.At(i, j))
			}
		}
		offset += n
	}
	return NewFromCovariance(mean, cov)
}

// Marginalise returns the MVN over the subset of dimensions named by idx
// (order preserved, duplicates rejected by callers), extracted from the
// covariance representation.
func (m *MVN) Marginalise(idx []int) (*MVN, error) {
	n := m.Dim()
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, ErrIndexOutOfRange
		}
	}
	cov, err := m.Covariance()
	if err != nil {
		return nil, err
	}
	mean := m.Mean()
	k := len(idx)
	subMean := make([]float64, k)
	subCov := mat.NewSymDense(k, nil)
	for a, i := range idx {
		subMean[a] = mean[i]
		for b := a; b < k; b++ {
			j := idx[b]
			subCov.SetSym(a, b, cov.At(i, j))
		}
	}
	return NewFromCovariance(subMean, subCov)
}

// Sample draws one vector from this MVN using rng, for testing only (spec
// §4.1: "sample (for testing only)").
func (m *MVN) Sample(rng *rand.Rand) ([]float64, error) {
	cov, err := m.Covariance()
	if err != nil {
		return nil, err
	}
	n := m.Dim()
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, ErrNotPositiveDefinite
	}
	var L mat.TriDense
	chol.LTo(&L)

	z := make([]float64, n)
	for i := range z {
		z[i] = rng.NormFloat64()
	}
	zVec := mat.NewVecDense(n, z)
	var Lz mat.VecDense
	Lz.MulVec(&L, zVec)

	mean := m.Mean()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = mean[i] + Lz.AtVec(i)
	}
	return out, nil
}

// KLDivergence returns KL(m || other) for two MVNs of the same dimension:
//
//	KL = 1/2 [ tr(Sigma_p^-1 Sigma_q) + (mu_p-mu_q)^T Sigma_p^-1 (mu_p-mu_q)
//	           - k + ln(det(Sigma_p)/det(Sigma_q)) ]
//
// where q=m (this distribution) and p=other.
func (m *MVN) KLDivergence(other *MVN) (float64, error) {
	if m.Dim() != other.Dim() {
		return 0, ErrDimensionMismatch
	}
	k := m.Dim()

	sigmaQ, err := m.Covariance()
	if err != nil {
		return 0, err
	}
	sigmaP, err := other.Covariance()
	if err != nil {
		return 0, err
	}
	precP, err := other.Precision()
	if err != nil {
		return 0, err
	}

	var term mat.Dense
	term.Mul(precP, sigmaQ)
	tr := mat.Trace(&term)

	muQ, muP := m.Mean(), other.Mean()
	diff := make([]float64, k)
	for i := range diff {
		diff[i] = muP[i] - muQ[i]
	}
	diffVec := mat.NewVecDense(k, diff)
	var prod mat.VecDense
	prod.MulVec(precP, diffVec)
	quad := mat.Dot(diffVec, &prod)

	logDetP, err := other.LogDet()
	if err != nil {
		return 0, err
	}
	logDetQ, err := m.LogDet()
	if err != nil {
		return 0, err
	}

	return 0.5 * (tr + quad - float64(k) + logDetP - logDetQ), nil
}
