package model_test

import (
	"fmt"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/model"
)

func ExampleEvaluateSpectral() {
	flux, _ := model.EvaluateSpectral([]float64{97.8}, model.SpectralParams{
		LineAmplitude: 6, LineFrequency: 97.8, LineSigma: 0.1, ContinuumAmplitude: 1.3,
	})
	fmt.Printf("peak=%.1f\n", flux[0])

	// Output:
	// peak=7.3
}

func ExampleEvaluateBrightness() {
	g, _ := cube.NewGrid(32, 32)
	img, _ := model.EvaluateBrightness(g, model.BrightnessParams{Amplitude: 8, I0: 14, J0: 17, Sigma: 3})
	fmt.Printf("center=%.0f edge=%.3f\n", img.At(14, 17), img.At(23, 17))

	// Output:
	// center=8 edge=0.089
}
