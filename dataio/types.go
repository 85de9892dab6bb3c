package dataio

import "github.com/fabber-go/fabber/voxelgrid"

// Volume is a 4D volumetric timeseries: DimX*DimY*DimZ spatial voxels,
// each with DimT timepoints. Data is laid out one full 3D volume per
// timepoint, each volume row-major (x fastest, then y, then z), volumes
// concatenated in time order: Data[t*DimX*DimY*DimZ + z*DimX*DimY +
// y*DimX + x].
type Volume struct {
	DimX, DimY, DimZ, DimT int
	Data                   []float32
}

// validate checks Data's length against the declared dimensions.
func (v *Volume) validate() error {
	if v.DimX <= 0 || v.DimY <= 0 || v.DimZ <= 0 || v.DimT <= 0 {
		return ErrNonPositiveDims
	}
	want := v.DimX * v.DimY * v.DimZ * v.DimT
	if len(v.Data) != want {
		return ErrDimensionMismatch
	}
	return nil
}

// At returns the sample at spatial coordinate c, timepoint t.
func (v *Volume) At(c voxelgrid.Coord, t int) float32 {
	spatial := v.DimX * v.DimY * v.DimZ
	idx := t*spatial + c.Z*v.DimX*v.DimY + c.Y*v.DimX + c.X
	return v.Data[idx]
}

// Mask returns the spatial-only (DimT==1 semantics) flat mask: the first
// timepoint's samples, in voxelgrid.FromMask's expected row-major order.
func (v *Volume) Mask() []float64 {
	spatial := v.DimX * v.DimY * v.DimZ
	out := make([]float64, spatial)
	for i := 0; i < spatial; i++ {
		out[i] = float64(v.Data[i])
	}
	return out
}

// ExtractTimeseries reads grid's active voxels out of v, in grid index
// order: the per-voxel input vb.Run and spatialvb.Run expect.
func (v *Volume) ExtractTimeseries(grid *voxelgrid.Grid) ([][]float64, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	out := make([][]float64, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		c, err := grid.Coord(i)
		if err != nil {
			return nil, err
		}
		series := make([]float64, v.DimT)
		for t := 0; t < v.DimT; t++ {
			series[t] = float64(v.At(c, t))
		}
		out[i] = series
	}
	return out, nil
}

// VolumeReader loads a Volume from a named resource.
type VolumeReader interface {
	ReadVolume(path string) (*Volume, error)
}

// VolumeWriter persists a Volume to a named resource.
type VolumeWriter interface {
	WriteVolume(path string, v *Volume) error
}
