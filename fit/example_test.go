package fit_test

import (
	"fmt"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/fit"
	"github.com/cwbudde/algo-cubefit/model"
)

func ExampleFitter_Fit() {
	axis, _ := cube.Linspace(90, 106, 256)
	truth := model.SpectralParams{LineAmplitude: 6, LineFrequency: 97.8, LineSigma: 0.1, ContinuumAmplitude: 1.3}
	spectrum, _ := model.EvaluateSpectral(axis, truth)

	obj, _ := fit.NewSumSquared(model.NewSpectralModel(axis), spectrum)
	res, _ := fit.New().Fit(obj, []float64{5, 97.75, 0.15, 1},
		fit.Unbounded(), fit.Unbounded(), fit.Positive(), fit.Unbounded())

	fmt.Printf("success=%v A=%.3f nu0=%.3f sigma=%.3f C=%.3f\n",
		res.Success, res.Params[0], res.Params[1], res.Params[2], res.Params[3])

	// Output:
	// success=true A=6.000 nu0=97.800 sigma=0.100 C=1.300
}
