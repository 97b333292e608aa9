package model

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
	"github.com/cwbudde/algo-cubefit/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

func TestSpectralZeroAmplitudeIsContinuum(t *testing.T) {
	axis, _ := cube.Linspace(90, 106, 64)
	for _, sigma := range []float64{0.01, 0.5, -2, 40} {
		got, err := EvaluateSpectral(axis, SpectralParams{LineFrequency: 97.8, LineSigma: sigma, ContinuumAmplitude: 1.3})
		if err != nil {
			t.Fatalf("sigma %v: %v", sigma, err)
		}
		for k, v := range got {
			if v != 1.3 {
				t.Fatalf("sigma %v: got[%d] = %v, want 1.3", sigma, k, v)
			}
		}
	}
}

func TestSpectralPeakIndependentOfSigma(t *testing.T) {
	for _, sigma := range []float64{1e-3, 0.1, 1, -0.7, 25} {
		p := SpectralParams{LineAmplitude: 6, LineFrequency: 97.8, LineSigma: sigma, ContinuumAmplitude: 1.3}
		got, err := EvaluateSpectral([]float64{97.8}, p)
		if err != nil {
			t.Fatalf("EvaluateSpectral: %v", err)
		}
		if got[0] != p.ContinuumAmplitude+p.LineAmplitude {
			t.Fatalf("sigma %v: peak = %v, want %v", sigma, got[0], p.ContinuumAmplitude+p.LineAmplitude)
		}
	}
}

func TestSpectralKnownScenario(t *testing.T) {
	p, err := SpectralParamsFrom([]float64{6, 97.8, 0.1, 1.3})
	if err != nil {
		t.Fatalf("SpectralParamsFrom: %v", err)
	}
	got, err := EvaluateSpectral([]float64{97.8, 97.9, 97.6}, p)
	if err != nil {
		t.Fatalf("EvaluateSpectral: %v", err)
	}
	testutil.RequireNear(t, "peak", got[0], 7.3, 1e-12)
	testutil.RequireNear(t, "1 sigma", got[1], 1.3+6*math.Exp(-0.5), 1e-9)
	testutil.RequireNear(t, "2 sigma", got[2], 1.3+6*math.Exp(-2), 1e-9)
}

func TestSpectralErrors(t *testing.T) {
	p := SpectralParams{LineAmplitude: 1, LineFrequency: 1, LineSigma: 0}
	if _, err := EvaluateSpectral([]float64{1, 2}, p); !errdefs.IsDomain(err) {
		t.Fatalf("zero sigma: got %v, want domain error", err)
	}
	p.LineSigma = 1
	if err := Spectral(make([]float64, 1), []float64{1, 2}, p); !errdefs.IsShape(err) {
		t.Fatalf("short dst: got %v, want shape error", err)
	}
	if _, err := SpectralParamsFrom([]float64{1, 2, 3}); !errdefs.IsConfiguration(err) {
		t.Fatalf("3 params: got %v, want configuration error", err)
	}
}

func TestSpectralModelBound(t *testing.T) {
	axis, _ := cube.Linspace(90, 106, 256)
	m := NewSpectralModel(axis)
	if m.NumParams() != 4 || m.Len() != 256 {
		t.Fatalf("NumParams/Len = %d/%d", m.NumParams(), m.Len())
	}
	theta := []float64{6, 97.8, 0.1, 1.3}
	dst := make([]float64, m.Len())
	if err := m.Evaluate(dst, theta); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want, _ := EvaluateSpectral(axis, SpectralParams{6, 97.8, 0.1, 1.3})
	testutil.RequireSliceNearlyEqual(t, dst, want, 0)
}

func TestBrightnessZeroAmplitude(t *testing.T) {
	g, _ := cube.NewGrid(8, 5)
	img, err := EvaluateBrightness(g, BrightnessParams{Amplitude: 0, I0: 3, J0: 2, Sigma: 1.5})
	if err != nil {
		t.Fatalf("EvaluateBrightness: %v", err)
	}
	r, c := img.Dims()
	if r != 8 || c != 5 {
		t.Fatalf("Dims = %dx%d, want 8x5", r, c)
	}
	if mat.Max(img) != 0 || mat.Min(img) != 0 {
		t.Fatalf("image not all zero: %v", mat.Formatted(img))
	}
}

func TestBrightnessKnownScenario(t *testing.T) {
	g, _ := cube.NewGrid(32, 32)
	img, err := EvaluateBrightness(g, BrightnessParams{Amplitude: 8, I0: 14, J0: 17, Sigma: 3})
	if err != nil {
		t.Fatalf("EvaluateBrightness: %v", err)
	}
	if got := img.At(14, 17); got != 8 {
		t.Fatalf("center = %v, want 8", got)
	}
	testutil.RequireNear(t, "3 sigma along i", img.At(23, 17), 8*math.Exp(-4.5), 1e-12)
	testutil.RequireNear(t, "3 sigma along j", img.At(14, 8), 0.0889, 1e-4)
}

func TestBrightnessErrors(t *testing.T) {
	g, _ := cube.NewGrid(4, 4)
	if _, err := EvaluateBrightness(g, BrightnessParams{Amplitude: 1, Sigma: 0}); !errdefs.IsDomain(err) {
		t.Fatalf("zero sigma: got %v, want domain error", err)
	}
	bad := cube.Grid{II: mat.NewDense(4, 4, nil), JJ: mat.NewDense(4, 3, nil)}
	if _, err := EvaluateBrightness(bad, BrightnessParams{Amplitude: 1, Sigma: 1}); !errdefs.IsShape(err) {
		t.Fatalf("mismatched grid: got %v, want shape error", err)
	}
	if err := Brightness(mat.NewDense(3, 4, nil), g, BrightnessParams{Amplitude: 1, Sigma: 1}); !errdefs.IsShape(err) {
		t.Fatalf("mismatched dst: got %v, want shape error", err)
	}
}

func TestBrightnessModelMatchesImage(t *testing.T) {
	g, _ := cube.NewGrid(6, 7)
	p := BrightnessParams{Amplitude: 2, I0: 2.5, J0: 3.2, Sigma: 1.7}
	img, _ := EvaluateBrightness(g, p)

	m, err := NewBrightnessModel(g)
	if err != nil {
		t.Fatalf("NewBrightnessModel: %v", err)
	}
	flat := make([]float64, m.Len())
	if err := m.Evaluate(flat, p.Vector()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	d, err := testutil.MaxAbsDiff(flat, img.RawMatrix().Data)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if d != 0 {
		t.Fatalf("flattened model differs from image by %v", d)
	}
	if err := m.Evaluate(flat, []float64{1}); !errdefs.IsConfiguration(err) {
		t.Fatalf("short theta: got %v, want configuration error", err)
	}
}

func TestDerivedQuantities(t *testing.T) {
	testutil.RequireNear(t, "fwhm", FWHM(1), 2.3548200450309493, 1e-12)
	testutil.RequireNear(t, "fwhm round trip", SigmaFromFWHM(FWHM(0.37)), 0.37, 1e-15)
	testutil.RequireNear(t, "line flux", LineFlux(SpectralParams{LineAmplitude: 2, LineSigma: -0.5}), math.Sqrt(2*math.Pi), 1e-12)
	testutil.RequireNear(t, "total flux", TotalFlux(BrightnessParams{Amplitude: 1, Sigma: 2}), 8*math.Pi, 1e-12)
}

func TestNewBrightnessModelRejectsBadGrid(t *testing.T) {
	tests := []struct {
		name string
		g    cube.Grid
	}{
		{"mismatched components", cube.Grid{II: mat.NewDense(4, 4, nil), JJ: mat.NewDense(4, 3, nil)}},
		{"zero grid", cube.Grid{}},
		{"missing column grid", cube.Grid{II: mat.NewDense(2, 2, nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewBrightnessModel(tt.g)
			if !errdefs.IsShape(err) {
				t.Fatalf("got %v, want shape error", err)
			}
			if m != nil {
				t.Fatal("model returned alongside error")
			}
			if _, err := EvaluateBrightness(tt.g, BrightnessParams{Amplitude: 1, Sigma: 1}); !errdefs.IsShape(err) {
				t.Fatalf("EvaluateBrightness: got %v, want shape error", err)
			}
		})
	}
}

func TestPeakExactForTinySigma(t *testing.T) {
	for _, sigma := range []float64{1e-150, 1e-170, 1e-200, -1e-200, math.SmallestNonzeroFloat64} {
		spec, err := EvaluateSpectral([]float64{97.8, 97.9}, SpectralParams{
			LineAmplitude: 6, LineFrequency: 97.8, LineSigma: sigma, ContinuumAmplitude: 1.3,
		})
		if err != nil {
			t.Fatalf("sigma %g: %v", sigma, err)
		}
		if spec[0] != 7.3 {
			t.Fatalf("sigma %g: peak = %v, want 7.3", sigma, spec[0])
		}
		if spec[1] != 1.3 {
			t.Fatalf("sigma %g: off-line value = %v, want 1.3", sigma, spec[1])
		}

		g, _ := cube.NewGrid(3, 3)
		img, err := EvaluateBrightness(g, BrightnessParams{Amplitude: 8, I0: 1, J0: 1, Sigma: sigma})
		if err != nil {
			t.Fatalf("sigma %g: %v", sigma, err)
		}
		if img.At(1, 1) != 8 || img.At(0, 1) != 0 {
			t.Fatalf("sigma %g: center %v, neighbour %v", sigma, img.At(1, 1), img.At(0, 1))
		}
	}
}
