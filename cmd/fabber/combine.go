package main

import (
	"fmt"

	"github.com/fabber-go/fabber/config"
	"github.com/fabber-go/fabber/dataio"
)

// loadData reads every file in files with codec and combines them into
// one Volume per order's data-order semantics (spec §6): singlefile is
// the one file as-is; concatenate appends each file's timepoints in
// order; interleave requires every file to carry the same DimT and
// interleaves timepoint-by-timepoint across files.
func loadData(files []string, order config.DataOrder, codec dataio.FlatCodec) (*dataio.Volume, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("loadData: no data files given")
	}
	volumes := make([]*dataio.Volume, len(files))
	for i, f := range files {
		v, err := codec.ReadVolume(f)
		if err != nil {
			return nil, fmt.Errorf("loadData: %s: %w", f, err)
		}
		if i > 0 {
			first := volumes[0]
			if v.DimX != first.DimX || v.DimY != first.DimY || v.DimZ != first.DimZ {
				return nil, fmt.Errorf("loadData: %s: spatial dimensions disagree with %s", f, files[0])
			}
		}
		volumes[i] = v
	}
	if len(volumes) == 1 {
		return volumes[0], nil
	}

	switch order {
	case config.Concatenate:
		return concatenateVolumes(volumes), nil
	case config.Interleave:
		return interleaveVolumes(volumes)
	default:
		return volumes[0], nil
	}
}

func concatenateVolumes(volumes []*dataio.Volume) *dataio.Volume {
	first := volumes[0]
	totalT := 0
	for _, v := range volumes {
		totalT += v.DimT
	}
	out := &dataio.Volume{DimX: first.DimX, DimY: first.DimY, DimZ: first.DimZ, DimT: totalT}
	spatial := first.DimX * first.DimY * first.DimZ
	out.Data = make([]float32, spatial*totalT)

	offsetT := 0
	for _, v := range volumes {
		copy(out.Data[offsetT*spatial:(offsetT+v.DimT)*spatial], v.Data)
		offsetT += v.DimT
	}
	return out
}

func interleaveVolumes(volumes []*dataio.Volume) (*dataio.Volume, error) {
	first := volumes[0]
	for _, v := range volumes {
		if v.DimT != first.DimT {
			return nil, fmt.Errorf("loadData: interleave requires every file to have the same number of timepoints")
		}
	}
	spatial := first.DimX * first.DimY * first.DimZ
	n := first.DimT
	numFiles := len(volumes)
	out := &dataio.Volume{DimX: first.DimX, DimY: first.DimY, DimZ: first.DimZ, DimT: n * numFiles}
	out.Data = make([]float32, spatial*n*numFiles)

	for tOrig := 0; tOrig < n; tOrig++ {
		for f, v := range volumes {
			srcOff := tOrig * spatial
			dstT := tOrig*numFiles + f
			dstOff := dstT * spatial
			copy(out.Data[dstOff:dstOff+spatial], v.Data[srcOff:srcOff+spatial])
		}
	}
	return out, nil
}
