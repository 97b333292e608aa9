package model

import (
	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
	"gonum.org/v1/gonum/mat"
)

// BrightnessParamNames lists the brightness parameters in vector order.
var BrightnessParamNames = []string{"amplitude", "i0", "j0", "sigma"}

// BrightnessParams describes a circular 2D Gaussian brightness distribution
// in pixel coordinates.
type BrightnessParams struct {
	Amplitude float64
	I0, J0    float64
	Sigma     float64
}

// Vector returns the parameters in BrightnessParamNames order.
func (p BrightnessParams) Vector() []float64 {
	return []float64{p.Amplitude, p.I0, p.J0, p.Sigma}
}

// BrightnessParamsFrom unpacks a parameter vector.
func BrightnessParamsFrom(theta []float64) (BrightnessParams, error) {
	if len(theta) != len(BrightnessParamNames) {
		return BrightnessParams{}, errdefs.Configurationf("brightness model takes %d parameters, got %d", len(BrightnessParamNames), len(theta))
	}
	return BrightnessParams{Amplitude: theta[0], I0: theta[1], J0: theta[2], Sigma: theta[3]}, nil
}

// brightnessPoints evaluates the profile at flattened coordinates.
func brightnessPoints(dst, is, js []float64, p BrightnessParams) error {
	if len(is) != len(js) || len(dst) != len(is) {
		return errdefs.Shapef("brightness lengths differ: dst %d, i %d, j %d", len(dst), len(is), len(js))
	}
	if p.Sigma == 0 {
		return errdefs.Domainf("brightness sigma must be nonzero")
	}
	for n := range dst {
		zi := (is[n] - p.I0) / p.Sigma
		zj := (js[n] - p.J0) / p.Sigma
		dst[n] = p.Amplitude * mathExp(-0.5*(zi*zi+zj*zj))
	}
	return nil
}

// Brightness evaluates the profile on grid g into dst, which must have the
// grid's shape.
func Brightness(dst *mat.Dense, g cube.Grid, p BrightnessParams) error {
	if dst == nil {
		return errdefs.Shapef("brightness requires an output matrix")
	}
	if err := g.Validate(); err != nil {
		return err
	}
	ri, ci := g.II.Dims()
	rd, cd := dst.Dims()
	if rd != ri || cd != ci {
		return errdefs.Shapef("output is %dx%d, grid is %dx%d", rd, cd, ri, ci)
	}
	if p.Sigma == 0 {
		return errdefs.Domainf("brightness sigma must be nonzero")
	}
	for i := 0; i < ri; i++ {
		for j := 0; j < ci; j++ {
			zi := (g.II.At(i, j) - p.I0) / p.Sigma
			zj := (g.JJ.At(i, j) - p.J0) / p.Sigma
			dst.Set(i, j, p.Amplitude*mathExp(-0.5*(zi*zi+zj*zj)))
		}
	}
	return nil
}

// EvaluateBrightness allocates and returns the model image.
func EvaluateBrightness(g cube.Grid, p BrightnessParams) (*mat.Dense, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	r, c := g.II.Dims()
	out := mat.NewDense(r, c, nil)
	if err := Brightness(out, g, p); err != nil {
		return nil, err
	}
	return out, nil
}

// BrightnessModel binds the brightness profile to a fixed coordinate grid.
// Model output is the image flattened in row-major order.
type BrightnessModel struct {
	is, js []float64
}

// NewBrightnessModel binds the model to g. A zero grid or one with
// mismatched components is a shape error.
func NewBrightnessModel(g cube.Grid) (*BrightnessModel, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	is, js := g.Points()
	return &BrightnessModel{is: is, js: js}, nil
}

// NumParams returns 4.
func (m *BrightnessModel) NumParams() int { return len(BrightnessParamNames) }

// Len returns the number of grid cells.
func (m *BrightnessModel) Len() int { return len(m.is) }

// ParamNames returns the parameter names in vector order.
func (m *BrightnessModel) ParamNames() []string { return BrightnessParamNames }

// Evaluate writes the flattened model image for theta into dst.
func (m *BrightnessModel) Evaluate(dst, theta []float64) error {
	p, err := BrightnessParamsFrom(theta)
	if err != nil {
		return err
	}
	return brightnessPoints(dst, m.is, m.js, p)
}
