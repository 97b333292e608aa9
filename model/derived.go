package model

import "math"

// fwhmFactor is 2*sqrt(2*ln 2).
var fwhmFactor = 2 * math.Sqrt(2*math.Ln2)

// FWHM converts a Gaussian sigma to full width at half maximum.
func FWHM(sigma float64) float64 {
	return fwhmFactor * math.Abs(sigma)
}

// SigmaFromFWHM converts a full width at half maximum to a Gaussian sigma.
func SigmaFromFWHM(fwhm float64) float64 {
	return math.Abs(fwhm) / fwhmFactor
}

// LineFlux returns the frequency-integrated flux of the line above the
// continuum: A * |sigma| * sqrt(2*pi).
func LineFlux(p SpectralParams) float64 {
	return p.LineAmplitude * math.Abs(p.LineSigma) * math.Sqrt(2*math.Pi)
}

// TotalFlux returns the spatially integrated brightness of an untruncated
// profile: 2*pi*A*sigma^2.
func TotalFlux(p BrightnessParams) float64 {
	return 2 * math.Pi * p.Amplitude * p.Sigma * p.Sigma
}
