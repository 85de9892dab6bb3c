package main

import (
	"fmt"

	"github.com/fabber-go/fabber/config"
	"github.com/fabber-go/fabber/modelstore"
)

func printListMethods() {
	fmt.Println("vb         per-voxel variational Bayes, no spatial coupling")
	fmt.Println("spatialvb  variational Bayes with spatial priors across neighbouring voxels")
	fmt.Println("nlls       Gauss-Newton point-estimate fallback, no priors or free energy")
}

func printListModels() {
	for _, name := range modelstore.Default.Names() {
		fmt.Println(name)
	}
}

func printHelp(opts *config.Options) {
	fmt.Println("fabber --model=<name> --method=<vb|spatialvb|nlls> --data=<file> --mask=<file> --output=<dir> [options]")
	fmt.Println()
	fmt.Println("Structural options:")
	fmt.Println("  --data1, --data2, ...       multiple data volumes (see --data-order)")
	fmt.Println("  --data-order=interleave|concatenate|singlefile")
	fmt.Println("  --overwrite                 reuse an existing output directory")
	fmt.Println("  --loadmodels=<path>         load a plugin registering another --model")
	fmt.Println("  -f <file>, -@ <file>        read more options from a file")
	fmt.Println()
	fmt.Println("Per-parameter options (1-indexed, i = 1..P):")
	fmt.Println("  --prior<i>=N|A|I|M|m|P|p    Normal/ARD/Image/Spatial variants (spec §4.3)")
	fmt.Println("  --prior<i>-mu, --prior<i>-var, --prior<i>-ard, --image<i>")
	fmt.Println("  --transform<i>=identity|log|softplus")
	fmt.Println("  --fixed-rho<i>, --fixed-delta<i>")
	fmt.Println()
	fmt.Println("Noise: --noise=white|ar1, --noise-c0, --noise-s0, --noise-alpha-var")
	fmt.Println("Spatial: --spatial-dims=0|2|3, --metric=euclidean|squared-euclidean|manhattan,")
	fmt.Println("         --spatial-speed, --use-sim-evidence, --update-first-iter")
	fmt.Println("Convergence: --inner-policy, --inner-tol, --inner-maxits, --inner-maxtrials,")
	fmt.Println("             --outer-policy, --outer-tol, --outer-maxits")
	fmt.Println("Output selection: --save-mean, --save-std, --save-zstat, --save-noise,")
	fmt.Println("                  --save-free-energy, --save-modelfit, --save-residuals,")
	fmt.Println("                  --save-mvn, --save-all")
	if opts != nil && opts.Model != "" {
		fmt.Println()
		fmt.Printf("Model %q: per-parameter options above apply once --model is resolved;\n", opts.Model)
		fmt.Println("this help does not list the model's own parameters or options.")
	}
}
