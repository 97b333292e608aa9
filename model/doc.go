// Package model implements the closed-form models fitted to cube data: a
// Gaussian emission line on a flat continuum for spectra, and a circular 2D
// Gaussian brightness distribution for channel images.
//
// Each model is available in two forms. The plain functions ([Spectral],
// [Brightness]) take the independent variables and a parameter struct and
// are pure. The bound forms ([SpectralModel], [BrightnessModel]) capture the
// independent variables at construction and expose only the parameter
// vector, which is the shape a minimizer needs:
//
//	m := model.NewSpectralModel(axis)
//	obj, err := fit.NewSumSquared(m, spectrum)
//
// Build with -tags fastmath to evaluate the exponential with the algo-approx
// fast approximation.
package model
