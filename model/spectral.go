package model

import (
	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
)

// SpectralParamNames lists the spectral parameters in vector order.
var SpectralParamNames = []string{"line_amplitude", "line_frequency", "line_sigma", "continuum_amplitude"}

// SpectralParams describes a Gaussian emission line on a flat continuum.
// Frequencies and widths share the unit of the axis (GHz).
type SpectralParams struct {
	LineAmplitude      float64
	LineFrequency      float64
	LineSigma          float64
	ContinuumAmplitude float64
}

// Vector returns the parameters in SpectralParamNames order.
func (p SpectralParams) Vector() []float64 {
	return []float64{p.LineAmplitude, p.LineFrequency, p.LineSigma, p.ContinuumAmplitude}
}

// SpectralParamsFrom unpacks a parameter vector.
func SpectralParamsFrom(theta []float64) (SpectralParams, error) {
	if len(theta) != len(SpectralParamNames) {
		return SpectralParams{}, errdefs.Configurationf("spectral model takes %d parameters, got %d", len(SpectralParamNames), len(theta))
	}
	return SpectralParams{
		LineAmplitude:      theta[0],
		LineFrequency:      theta[1],
		LineSigma:          theta[2],
		ContinuumAmplitude: theta[3],
	}, nil
}

// Spectral evaluates the line + continuum flux density at each frequency
// into dst:
//
//	dst[k] = C + A * exp(-0.5 * (x[k] - nu0)^2 / sigma^2)
//
// A zero sigma is a domain error. A negative sigma is accepted; only its
// square enters the formula.
func Spectral(dst, freqs []float64, p SpectralParams) error {
	if len(dst) != len(freqs) {
		return errdefs.Shapef("spectral output length %d != frequency length %d", len(dst), len(freqs))
	}
	if p.LineSigma == 0 {
		return errdefs.Domainf("line sigma must be nonzero")
	}
	for k, x := range freqs {
		z := (x - p.LineFrequency) / p.LineSigma
		dst[k] = p.ContinuumAmplitude + p.LineAmplitude*mathExp(-0.5*z*z)
	}
	return nil
}

// EvaluateSpectral allocates and returns the model spectrum.
func EvaluateSpectral(freqs []float64, p SpectralParams) ([]float64, error) {
	out := make([]float64, len(freqs))
	if err := Spectral(out, freqs, p); err != nil {
		return nil, err
	}
	return out, nil
}

// SpectralModel binds the spectral profile to a fixed frequency axis so a
// fitter only varies the parameter vector.
type SpectralModel struct {
	freqs []float64
}

// NewSpectralModel binds the model to axis.
func NewSpectralModel(axis cube.Axis) *SpectralModel {
	return &SpectralModel{freqs: axis.Values()}
}

// NumParams returns 4.
func (m *SpectralModel) NumParams() int { return len(SpectralParamNames) }

// Len returns the number of channels on the bound axis.
func (m *SpectralModel) Len() int { return len(m.freqs) }

// ParamNames returns the parameter names in vector order.
func (m *SpectralModel) ParamNames() []string { return SpectralParamNames }

// Evaluate writes the model for theta into dst.
func (m *SpectralModel) Evaluate(dst, theta []float64) error {
	p, err := SpectralParamsFrom(theta)
	if err != nil {
		return err
	}
	return Spectral(dst, m.freqs, p)
}
