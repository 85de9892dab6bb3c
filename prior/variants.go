package prior

// Normal is a fixed Gaussian prior configured from the option file: a
// constant (mu, 1/sigma^2) for every voxel.
type Normal struct {
	Mu     float64
	Sigma2 float64
}

func (Normal) Kind() Kind { return KindNormal }

func (n Normal) Contribution(Inputs) (Contribution, error) {
	return Contribution{Mu0: n.Mu, Lambda0: 1 / n.Sigma2}, nil
}

// Image is a voxelwise mean read from an external volume, with a fixed
// configured variance.
type Image struct {
	Sigma2 float64
}

func (Image) Kind() Kind { return KindImage }

func (im Image) Contribution(in Inputs) (Contribution, error) {
	return Contribution{Mu0: in.ImageValue, Lambda0: 1 / im.Sigma2}, nil
}

// ARD (automatic relevance determination) shrinks unused parameters to
// zero: mu=0, precision 1/(mu_v^2 + Sigma_v[p,p]) from Inputs' PosteriorMean
// and PosteriorVar. Package vb refreshes those from the voxel's current
// posterior on every inner iteration, so the precision is not held fixed
// across an outer step.
type ARD struct{}

func (ARD) Kind() Kind { return KindARD }

func (ARD) Contribution(in Inputs) (Contribution, error) {
	denom := in.PosteriorMean*in.PosteriorMean + in.PosteriorVar
	if denom <= 0 {
		return Contribution{}, ErrDegenerateARD
	}
	return Contribution{Mu0: 0, Lambda0: 1 / denom}, nil
}

// SpatialM is the thin-plate/MRF shrinkage prior: the conditional mean is
// the mean of N1(v)'s posterior means, and the conditional precision scales
// with the neighbour count.
type SpatialM struct{}

func (SpatialM) Kind() Kind { return KindSpatialM }

func (SpatialM) Contribution(in Inputs) (Contribution, error) {
	if len(in.NeighbourMeans) == 0 {
		return Contribution{Mu0: 0, Lambda0: 0}, nil
	}
	sum := 0.0
	for _, m := range in.NeighbourMeans {
		sum += m
	}
	mu0 := sum / float64(len(in.NeighbourMeans))
	return Contribution{Mu0: mu0, Lambda0: in.Rho * float64(in.NeighbourCount)}, nil
}

// Spatialm is SpatialM with a Dirichlet boundary condition: edge voxels use
// the lattice-expected neighbour count instead of the actual |N1(v)|, so the
// prior doesn't artificially weaken near the volume's edge.
type Spatialm struct{}

func (Spatialm) Kind() Kind { return KindSpatialm }

func (Spatialm) Contribution(in Inputs) (Contribution, error) {
	if len(in.NeighbourMeans) == 0 {
		return Contribution{Mu0: 0, Lambda0: 0}, nil
	}
	sum := 0.0
	for _, m := range in.NeighbourMeans {
		sum += m
	}
	mu0 := sum / float64(len(in.NeighbourMeans))
	return Contribution{Mu0: mu0, Lambda0: in.Rho * float64(in.ExpectedNeighbourCount)}, nil
}

// SpatialP is the Penny-style evidence-optimised spatial prior. It treats
// the full grid for this parameter as a Gaussian Markov random field with
// precision matrix Rho*K(delta)^-1, and derives voxel v's conditional
// Gaussian from that field's standard conditional-distribution identity:
// given precision row Q[v,:] = Rho*KRow, the conditional precision at v is
// Q[v,v] and the conditional mean is -(1/Q[v,v]) * sum_{j!=v} Q[v,j]*mu_j.
type SpatialP struct{}

func (SpatialP) Kind() Kind { return KindSpatialP }

func (SpatialP) Contribution(in Inputs) (Contribution, error) {
	return spatialCARContribution(in)
}

func spatialCARContribution(in Inputs) (Contribution, error) {
	v := in.VoxelIndex
	if v < 0 || v >= len(in.KRow) || len(in.KRow) != len(in.AllPosteriorMeans) {
		return Contribution{}, ErrDegenerateSpatial
	}
	qvv := in.Rho * in.KRow[v]
	if qvv <= 0 {
		return Contribution{}, ErrDegenerateSpatial
	}
	sum := 0.0
	for j, kij := range in.KRow {
		if j == v {
			continue
		}
		sum += in.Rho * kij * in.AllPosteriorMeans[j]
	}
	return Contribution{Mu0: -sum / qvv, Lambda0: qvv}, nil
}

// Spatialp is SpatialP restricted to the tridiagonal approximation of
// K(delta): identical conditional-Gaussian math, just fed a KRow that
// package spatialvb has already truncated to first-order neighbours.
type Spatialp struct {
	SpatialP
}

func (Spatialp) Kind() Kind { return KindSpatialp }
