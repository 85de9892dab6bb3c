package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fabber-go/fabber/config"
	"github.com/fabber-go/fabber/dataio"
	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/nlls"
	"github.com/fabber-go/fabber/noise"
	"github.com/fabber-go/fabber/prior"
	"github.com/fabber-go/fabber/runlog"
	"github.com/fabber-go/fabber/spatialvb"
	"github.com/fabber-go/fabber/transform"
	"github.com/fabber-go/fabber/voxelgrid"
)

// runE is the CLI's full orchestration: parse options, handle the
// --help/--listmethods/--listmodels early exits, load the mask and data
// volumes, build the model/priors/noise from --key=value options, run
// the requested method over every voxel, and write the outputs (spec
// §6).
func runE(args []string) error {
	opts, err := config.Parse(args)
	if err != nil {
		return err
	}

	if opts.ListMethods {
		printListMethods()
		return nil
	}
	if opts.ListModels {
		printListModels()
		return nil
	}
	if opts.Help {
		printHelp(opts)
		return nil
	}

	codec := dataio.FlatCodec{}

	maskVol, err := codec.ReadVolume(opts.MaskFile)
	if err != nil {
		return fmt.Errorf("fabber: loading mask %s: %w", opts.MaskFile, err)
	}
	grid, err := voxelgrid.FromMask(maskVol.Mask(), maskVol.DimX, maskVol.DimY, maskVol.DimZ)
	if err != nil {
		return fmt.Errorf("fabber: building voxel grid: %w", err)
	}

	dataVol, err := loadData(opts.DataFiles, opts.DataOrder, codec)
	if err != nil {
		return err
	}
	if dataVol.DimX != maskVol.DimX || dataVol.DimY != maskVol.DimY || dataVol.DimZ != maskVol.DimZ {
		return fmt.Errorf("fabber: data volume spatial dimensions disagree with mask")
	}
	data, err := dataVol.ExtractTimeseries(grid)
	if err != nil {
		return fmt.Errorf("fabber: extracting voxel timeseries: %w", err)
	}

	outDir, err := config.ResolveOutputDir(opts.Output, opts.Overwrite)
	if err != nil {
		return err
	}
	logger, err := runlog.NewFile(filepath.Join(outDir, "logfile.txt"))
	if err != nil {
		return err
	}

	model, err := buildModel(opts, dataVol.DimT)
	if err != nil {
		return err
	}
	p := model.NumParams()

	transforms, err := buildTransforms(p, opts.Raw)
	if err != nil {
		return err
	}
	priors, err := buildPriors(p, opts.Raw)
	if err != nil {
		return err
	}
	newNoise := buildNoiseFactory(opts.Raw)
	imageValues, err := buildImageValues(priors, opts.Raw, grid, codec)
	if err != nil {
		return err
	}

	sel := resolveSaveSelection(opts)

	switch opts.Method {
	case "vb", "spatialvb":
		return runVB(opts, grid, maskVol, model, transforms, priors, newNoise, imageValues, data, logger, outDir, sel, codec)
	case "nlls":
		return runNLLS(opts, grid, model, data, outDir, sel, codec, maskVol)
	default:
		return fmt.Errorf("fabber: unknown --method=%s (want vb, spatialvb, or nlls)", opts.Method)
	}
}

// runVB drives spec §4.10's outer loop (for --method=spatialvb) or its
// spatially-idempotent special case (for --method=vb, spec §8) and
// writes every selected output volume.
func runVB(opts *config.Options, grid *voxelgrid.Grid, maskVol *dataio.Volume, model fwdmodel.ForwardModel,
	transforms []transform.Transform, priors []prior.ParameterPrior, newNoise func() noise.Posterior,
	imageValues [][]float64, data [][]float64, logger runlog.Logger, outDir string, sel *saveSelection,
	codec dataio.FlatCodec) error {

	cfg := buildSpatialConfig(opts, grid, model, transforms, priors, newNoise, imageValues, logger)
	coordinator, err := spatialvb.New(cfg)
	if err != nil {
		return fmt.Errorf("fabber: configuring %s: %w", opts.Method, err)
	}

	result, err := coordinator.Run(context.Background(), data)
	if err != nil {
		return fmt.Errorf("fabber: %s run: %w", opts.Method, err)
	}
	for _, vi := range result.Failed {
		logger.Warn("voxel failed to converge", runlog.F("voxel_index", vi))
	}

	return writeOutputs(outDir, sel, grid, maskVol.DimX, maskVol.DimY, maskVol.DimZ, model, result, data, codec)
}

// runNLLS runs the Gauss-Newton fallback independently per voxel: no
// priors, no free energy, no posterior covariance, so only the subset
// of outputs that make sense for a point estimate (mean_<param>,
// modelfit, residuals) are written.
func runNLLS(opts *config.Options, grid *voxelgrid.Grid, model fwdmodel.ForwardModel, data [][]float64,
	outDir string, sel *saveSelection, codec dataio.FlatCodec, maskVol *dataio.Volume) error {

	nllsCfg := nlls.Config{
		Model:     model,
		Tolerance: floatRaw(opts.Raw, "inner-tol", 0),
		MaxIters:  intRaw(opts.Raw, "inner-maxits", 0),
		MaxTrials: intRaw(opts.Raw, "inner-maxtrials", 0),
	}

	thetas := make([][]float64, grid.Len())
	fits := make([][]float64, grid.Len())
	t := model.NumTimepoints()
	for vi, y := range data {
		state, err := nlls.Run(nllsCfg, y)
		if err != nil {
			return fmt.Errorf("fabber: nlls: voxel %d: %w", vi, err)
		}
		thetas[vi] = state.Theta
		fit, err := model.Evaluate(state.Theta)
		if err != nil {
			return fmt.Errorf("fabber: nlls: voxel %d: evaluating fit: %w", vi, err)
		}
		fits[vi] = fit
	}

	names := model.ParamNames()
	if err := writeParamNames(outDir, names); err != nil {
		return err
	}

	dimX, dimY, dimZ := maskVol.DimX, maskVol.DimY, maskVol.DimZ
	if sel.mean {
		for i, name := range names {
			vol, err := scatterToVolume(grid, dimX, dimY, dimZ, 1, func(vi int) []float64 {
				return []float64{thetas[vi][i]}
			})
			if err != nil {
				return err
			}
			if err := codec.WriteVolume(filepath.Join(outDir, "mean_"+name), vol); err != nil {
				return err
			}
		}
	}
	if sel.modelfit {
		vol, err := scatterToVolume(grid, dimX, dimY, dimZ, t, func(vi int) []float64 { return fits[vi] })
		if err != nil {
			return err
		}
		if err := codec.WriteVolume(filepath.Join(outDir, "modelfit"), vol); err != nil {
			return err
		}
	}
	if sel.residuals {
		vol, err := scatterToVolume(grid, dimX, dimY, dimZ, t, func(vi int) []float64 {
			resid := make([]float64, t)
			for i := range resid {
				resid[i] = data[vi][i] - fits[vi][i]
			}
			return resid
		})
		if err != nil {
			return err
		}
		if err := codec.WriteVolume(filepath.Join(outDir, "residuals"), vol); err != nil {
			return err
		}
	}
	return nil
}
