package modelstore

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/fabber-go/fabber/fwdmodel"
	"github.com/fabber-go/fabber/transform"
)

func intOption(options map[string]string, key string, def int) int {
	v, ok := options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatOption(options map[string]string, key string, def float64) float64 {
	v, ok := options[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func trivialFactory(options map[string]string) (fwdmodel.ForwardModel, error) {
	n := intOption(options, "num-timepoints", 1)
	mean := floatOption(options, "initial-mean", 0)
	varr := floatOption(options, "initial-var", 1e6)
	return fwdmodel.NewTrivial(n, mean, varr), nil
}

func polyFactory(options map[string]string) (fwdmodel.ForwardModel, error) {
	degree := intOption(options, "degree", 2)
	n := intOption(options, "num-timepoints", 1)
	return fwdmodel.NewPolynomial(degree, n), nil
}

func linearFactory(options map[string]string) (fwdmodel.ForwardModel, error) {
	// A bare-bones design for --model=linear without an explicit design
	// matrix is a single constant-offset column: f(theta)[t] = theta[0].
	// Callers needing a richer design construct fwdmodel.Linear directly
	// and register it under their own name instead of going through this
	// generic CLI factory.
	n := intOption(options, "num-timepoints", 1)
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}
	design := mat.NewDense(n, 1, data)
	return fwdmodel.NewLinear(design, []string{"offset"}, []transform.DistParams{{Mean: 0, Var: 1e6}})
}
