package testutil

// ConstantTimeseries returns v voxels' worth of a length-t constant
// timeseries, one value per voxel.
func ConstantTimeseries(values []float64, t int) [][]float64 {
	out := make([][]float64, len(values))
	for vi, value := range values {
		series := make([]float64, t)
		for i := range series {
			series[i] = value
		}
		out[vi] = series
	}
	return out
}

// NoisyTimeseries adds independent N(0,sigma^2) noise to ConstantTimeseries,
// drawn from the WithSeed generator; without WithSeed (or with sigma 0)
// it returns the constant series unchanged.
func NoisyTimeseries(values []float64, t int, sigma float64, opts ...GridOption) [][]float64 {
	cfg := newGridConfig(opts...)
	out := ConstantTimeseries(values, t)
	if cfg.rng == nil || sigma == 0 {
		return out
	}
	for _, series := range out {
		for i := range series {
			series[i] += sigma * cfg.rng.NormFloat64()
		}
	}
	return out
}
