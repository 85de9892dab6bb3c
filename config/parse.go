package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fabber-go/fabber/internal/runerr"
)

// Parse turns argv (not including the program name) into Options: -f/-@
// option files are spliced in first, then every token is both captured
// verbatim into Raw and parsed by a pflag.FlagSet registering the
// well-known structural flags (spec §6). Unknown flags are never an
// error — they're the model-specific options a Factory consumes from
// Raw directly.
func Parse(args []string) (*Options, error) {
	tokens, err := expandOptionFiles(args)
	if err != nil {
		return nil, err
	}
	raw := tokenizeRaw(tokens)

	fs := pflag.NewFlagSet("fabber", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}

	var method, model, output, maskFile, loadModels, dataOrderStr, dataSingle string
	var overwrite, help, listMethods, listModels bool
	fs.StringVar(&method, "method", "", "inference method: vb, spatialvb, nlls")
	fs.StringVar(&model, "model", "", "forward model name")
	fs.StringVar(&output, "output", "", "output directory")
	fs.StringVar(&maskFile, "mask", "", "voxel mask volume")
	fs.StringVar(&loadModels, "loadmodels", "", "shared library registering an additional model")
	fs.StringVar(&dataOrderStr, "data-order", "", "interleave|concatenate|singlefile")
	fs.StringVar(&dataSingle, "data", "", "single data volume (singlefile)")
	fs.BoolVar(&overwrite, "overwrite", false, "reuse an existing output directory")
	fs.BoolVar(&help, "help", false, "print option help for --method/--model and exit")
	fs.BoolVar(&listMethods, "listmethods", false, "enumerate available methods and exit")
	fs.BoolVar(&listModels, "listmodels", false, "enumerate available models and exit")

	if err := fs.Parse(tokens); err != nil {
		return nil, runerr.New(runerr.KindInvalidOption, "parsing command line", err)
	}

	dataFiles := gatherDataFiles(raw, dataSingle)

	order := SingleFile
	if dataOrderStr != "" {
		order, err = dataOrderFromString(dataOrderStr)
		if err != nil {
			return nil, runerr.New(runerr.KindInvalidOption, "--data-order="+dataOrderStr, err)
		}
	} else if len(dataFiles) > 1 {
		order = Interleave
	}

	opts := &Options{
		Method:      method,
		Model:       model,
		DataFiles:   dataFiles,
		MaskFile:    maskFile,
		DataOrder:   order,
		Output:      output,
		Overwrite:   overwrite,
		Help:        help,
		ListMethods: listMethods,
		ListModels:  listModels,
		LoadModels:  loadModels,
		Raw:         raw,
	}

	if help || listMethods || listModels {
		return opts, nil
	}
	if model == "" {
		return nil, runerr.New(runerr.KindMissingOption, "--model", ErrMissingModel)
	}
	if method == "" {
		return nil, runerr.New(runerr.KindMissingOption, "--method", ErrMissingMethod)
	}
	if len(dataFiles) == 0 {
		return nil, runerr.New(runerr.KindMissingOption, "--data", ErrMissingData)
	}

	return opts, nil
}

// tokenizeRaw captures every --key[=value] token verbatim, independent
// of which flags pflag's FlagSet happens to have registered: this is
// the only way an unregistered model-specific option keeps its value.
func tokenizeRaw(tokens []string) map[string]string {
	raw := make(map[string]string, len(tokens))
	for _, t := range tokens {
		if !strings.HasPrefix(t, "--") {
			continue
		}
		kv := strings.TrimPrefix(t, "--")
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			raw[kv[:idx]] = kv[idx+1:]
		} else {
			raw[kv] = ""
		}
	}
	return raw
}

// gatherDataFiles resolves spec §6's multi-file data surface: --data
// alone (singlefile), or --data1, --data2, ... read sequentially until
// the first gap.
func gatherDataFiles(raw map[string]string, dataSingle string) []string {
	if dataSingle != "" {
		return []string{dataSingle}
	}
	var files []string
	for n := 1; ; n++ {
		key := fmt.Sprintf("data%d", n)
		v, ok := raw[key]
		if !ok {
			break
		}
		files = append(files, v)
	}
	return files
}
