package main

import (
	"fmt"
	"strconv"

	"github.com/fabber-go/fabber/config"
	"github.com/fabber-go/fabber/dataio"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/modelstore"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/voxelgrid"
)

func floatRaw(raw map[string]string, key string, def float64) float64 {
	v, ok := raw[key]
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func intRaw(raw map[string]string, key string, def int) int {
	v, ok := raw[key]
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// buildModel looks up opts.Model in the registry, loading opts.LoadModels
// first if given, injecting num-timepoints when the factory accepts it
// and the option file didn't already pin one (spec §6 "the registered
// name then becomes usable via --model=<name>").
func buildModel(opts *config.Options, numTimepoints int) (fwdmodel.ForwardModel, error) {
	if opts.LoadModels != "" {
		if err := modelstore.LoadPlugin(modelstore.Default, opts.LoadModels); err != nil {
			return nil, fmt.Errorf("buildModel: --loadmodels=%s: %w", opts.LoadModels, err)
		}
	}
	raw := make(map[string]string, len(opts.Raw)+1)
	for k, v := range opts.Raw {
		raw[k] = v
	}
	if _, ok := raw["num-timepoints"]; !ok {
		raw["num-timepoints"] = strconv.Itoa(numTimepoints)
	}
	return modelstore.Default.Build(opts.Model, raw)
}

// buildTransforms reads --transform<i>=<name> for each of the model's p
// parameters (1-indexed), defaulting to identity.
func buildTransforms(p int, raw map[string]string) ([]transform.Transform, error) {
	out := make([]transform.Transform, p)
	for i := 0; i < p; i++ {
		name := raw[fmt.Sprintf("transform%d", i+1)]
		if name == "" {
			name = "identity"
		}
		t, err := transform.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("buildTransforms: param %d: %w", i+1, err)
		}
		out[i] = t
	}
	return out, nil
}

// buildPriors reads --prior<i>=<N|A|I|M|m|P|p> per parameter (1-indexed),
// defaulting to Normal(0, 1e6), plus that variant's own options and an
// optional --prior<i>-ard=1 to add ARD alongside a spatial variant (spec
// §4.3; ARD-vs-spatial precedence is prior.Combine's job, not ours).
func buildPriors(p int, raw map[string]string) ([]prior.ParameterPrior, error) {
	out := make([]prior.ParameterPrior, p)
	for i := 0; i < p; i++ {
		idx := i + 1
		char := raw[fmt.Sprintf("prior%d", idx)]
		if char == "" {
			char = "N"
		}
		kind, err := prior.KindFromChar(char[0])
		if err != nil {
			return nil, fmt.Errorf("buildPriors: param %d: %w", idx, err)
		}
		variant, err := priorVariant(kind, idx, raw)
		if err != nil {
			return nil, err
		}
		variants := []prior.Prior{variant}
		if kind != prior.KindARD && raw[fmt.Sprintf("prior%d-ard", idx)] != "" {
			variants = append(variants, prior.ARD{})
		}
		out[i] = prior.ParameterPrior{Variants: variants}
	}
	return out, nil
}

func priorVariant(kind prior.Kind, idx int, raw map[string]string) (prior.Prior, error) {
	switch kind {
	case prior.KindNormal:
		return prior.Normal{
			Mu:     floatRaw(raw, fmt.Sprintf("prior%d-mu", idx), 0),
			Sigma2: floatRaw(raw, fmt.Sprintf("prior%d-var", idx), 1e6),
		}, nil
	case prior.KindARD:
		return prior.ARD{}, nil
	case prior.KindImage:
		return prior.Image{Sigma2: floatRaw(raw, fmt.Sprintf("prior%d-var", idx), 1e-3)}, nil
	case prior.KindSpatialM:
		return prior.SpatialM{}, nil
	case prior.KindSpatialm:
		return prior.Spatialm{}, nil
	case prior.KindSpatialP:
		return prior.SpatialP{}, nil
	case prior.KindSpatialp:
		return prior.Spatialp{}, nil
	default:
		return nil, fmt.Errorf("buildPriors: param %d: unsupported prior kind %s", idx, kind)
	}
}

// buildNoiseFactory reads --noise=white|ar1 (default white) and its
// hyperparameters (spec §4.4).
func buildNoiseFactory(raw map[string]string) func() noise.Posterior {
	c0 := floatRaw(raw, "noise-c0", 1e-6)
	s0 := floatRaw(raw, "noise-s0", 1e6)
	if raw["noise"] == "ar1" {
		alphaVar := floatRaw(raw, "noise-alpha-var", 1.0)
		return func() noise.Posterior { return noise.NewAR1(c0, s0, alphaVar) }
	}
	return func() noise.Posterior { return noise.NewWhite(c0, s0) }
}

// buildImageValues loads --image<i>=<path> for every parameter with an
// Image prior configured, aligning each loaded volume's first timepoint
// to grid. Returns nil if no parameter uses an Image prior.
func buildImageValues(priors []prior.ParameterPrior, raw map[string]string, grid *voxelgrid.Grid, codec dataio.FlatCodec) ([][]float64, error) {
	var out [][]float64
	for i, pp := range priors {
		isImage := false
		for _, v := range pp.Variants {
			if v.Kind() == prior.KindImage {
				isImage = true
				break
			}
		}
		if !isImage {
			continue
		}
		path := raw[fmt.Sprintf("image%d", i+1)]
		if path == "" {
			return nil, fmt.Errorf("buildImageValues: param %d: Image prior configured with no --image%d", i+1, i+1)
		}
		vol, err := codec.ReadVolume(path)
		if err != nil {
			return nil, fmt.Errorf("buildImageValues: param %d: %w", i+1, err)
		}
		mask := vol.Mask()
		values := make([]float64, grid.Len())
		for vi := 0; vi < grid.Len(); vi++ {
			c, err := grid.Coord(vi)
			if err != nil {
				return nil, err
			}
			values[vi] = mask[c.Z*vol.DimX*vol.DimY+c.Y*vol.DimX+c.X]
		}
		if out == nil {
			out = make([][]float64, len(priors))
		}
		out[i] = values
	}
	return out, nil
}
