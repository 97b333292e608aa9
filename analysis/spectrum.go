package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/fit"
	"github.com/cwbudde/algo-cubefit/model"
)

// SpectrumFit is the outcome of FitSpectrum.
type SpectrumFit struct {
	Guess  model.SpectralParams
	Params model.SpectralParams
	Result fit.Result
}

// FitSpectrum fits a Gaussian line on a flat continuum to spectrum. With
// per-channel variances the objective is chi-squared, otherwise the plain
// sum of squares. The line center is kept inside the axis and the width
// positive.
func FitSpectrum(axis cube.Axis, spectrum, variances []float64, opts ...fit.Option) (SpectrumFit, error) {
	guess, err := GuessSpectral(axis, spectrum)
	if err != nil {
		return SpectrumFit{}, fmt.Errorf("spectral guess: %w", err)
	}

	m := model.NewSpectralModel(axis)
	var obj fit.Objective
	if len(variances) > 0 {
		obj, err = fit.NewChiSquared(m, spectrum, variances)
	} else {
		obj, err = fit.NewSumSquared(m, spectrum)
	}
	if err != nil {
		return SpectrumFit{}, err
	}

	bounds := []fit.Bound{
		fit.Unbounded(),
		fit.Between(axis.At(0), axis.At(axis.Len()-1)),
		fit.Positive(),
		fit.Unbounded(),
	}
	res, err := fit.New(opts...).Fit(obj, guess.Vector(), bounds...)
	if err != nil {
		return SpectrumFit{}, err
	}
	params, err := model.SpectralParamsFrom(res.Params)
	if err != nil {
		return SpectrumFit{}, err
	}
	return SpectrumFit{Guess: guess, Params: params, Result: res}, nil
}
