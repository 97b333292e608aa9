package analysis_test

import (
	"fmt"

	"github.com/cwbudde/algo-cubefit/analysis"
	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/model"
)

func ExampleFitSpectrum() {
	axis, _ := cube.Linspace(90, 106, 128)
	spec, _ := model.EvaluateSpectral(axis, model.SpectralParams{
		LineAmplitude: 6, LineFrequency: 97.8, LineSigma: 0.5, ContinuumAmplitude: 1.3,
	})

	res, err := analysis.FitSpectrum(axis, spec, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	p := res.Params
	fmt.Printf("A=%.3f nu0=%.3f sigma=%.3f C=%.3f\n", p.LineAmplitude, p.LineFrequency, p.LineSigma, p.ContinuumAmplitude)
	// Output:
	// A=6.000 nu0=97.800 sigma=0.500 C=1.300
}
