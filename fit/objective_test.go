package fit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
	"github.com/cwbudde/algo-cubefit/internal/testutil"
	"github.com/cwbudde/algo-cubefit/model"
)

var trueSpectral = []float64{6, 97.8, 0.1, 1.3}

func spectralScenario(t testing.TB) (*model.SpectralModel, []float64) {
	t.Helper()
	axis, err := cube.Linspace(90, 106, 256)
	if err != nil {
		t.Fatalf("Linspace: %v", err)
	}
	m := model.NewSpectralModel(axis)
	obs := make([]float64, m.Len())
	if err := m.Evaluate(obs, trueSpectral); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return m, obs
}

func TestSumSquaredZeroAtTruth(t *testing.T) {
	m, obs := spectralScenario(t)
	obj, err := NewSumSquared(m, obs)
	if err != nil {
		t.Fatalf("NewSumSquared: %v", err)
	}
	cost, err := obj.Cost(trueSpectral)
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != 0 {
		t.Fatalf("cost at truth = %v, want 0", cost)
	}
}

func TestCostsNonNegative(t *testing.T) {
	m, obs := spectralScenario(t)
	variance := testutil.GaussianNoise(5, 1, len(obs))
	for k := range variance {
		variance[k] = 0.01 + variance[k]*variance[k]
	}
	sse, _ := NewSumSquared(m, obs)
	chi, err := NewChiSquared(m, obs, variance)
	if err != nil {
		t.Fatalf("NewChiSquared: %v", err)
	}

	rng := rand.New(rand.NewSource(9))
	for n := 0; n < 200; n++ {
		theta := []float64{
			rng.NormFloat64() * 10,
			90 + 16*rng.Float64(),
			0.01 + rng.Float64(),
			rng.NormFloat64() * 3,
		}
		a, err := sse.Cost(theta)
		if err != nil || a < 0 {
			t.Fatalf("SumSquared(%v) = %v, %v", theta, a, err)
		}
		b, err := chi.Cost(theta)
		if err != nil || b < 0 {
			t.Fatalf("ChiSquared(%v) = %v, %v", theta, b, err)
		}
	}
}

func TestChiSquaredConstantVarianceIsScaledSSE(t *testing.T) {
	m, obs := spectralScenario(t)
	noisy := append([]float64(nil), obs...)
	for k, v := range testutil.GaussianNoise(2, 0.3, len(noisy)) {
		noisy[k] += v
	}
	const c = 0.09

	sse, _ := NewSumSquared(m, noisy)
	full := make([]float64, len(noisy))
	for k := range full {
		full[k] = c
	}
	chi, err := NewChiSquared(m, noisy, full)
	if err != nil {
		t.Fatalf("NewChiSquared: %v", err)
	}
	scalar, err := NewChiSquaredScalar(m, noisy, c)
	if err != nil {
		t.Fatalf("NewChiSquaredScalar: %v", err)
	}

	theta := []float64{5.5, 97.7, 0.12, 1.1}
	a, _ := sse.Cost(theta)
	b, _ := chi.Cost(theta)
	s, _ := scalar.Cost(theta)
	testutil.RequireRelative(t, "chi2 vs sse/c", b, a/c, 1e-12)
	testutil.RequireRelative(t, "scalar vs full", s, b, 1e-15)
}

func TestResidualsMatchCost(t *testing.T) {
	m, obs := spectralScenario(t)
	variance := make([]float64, len(obs))
	for k := range variance {
		variance[k] = 0.5 + float64(k)/100
	}
	sse, _ := NewSumSquared(m, obs)
	chi, _ := NewChiSquared(m, obs, variance)
	theta := []float64{5, 97.9, 0.2, 1}

	for _, obj := range []Objective{sse, chi} {
		r := make([]float64, obj.NumPoints())
		if err := obj.Residuals(r, theta); err != nil {
			t.Fatalf("Residuals: %v", err)
		}
		var sum float64
		for _, v := range r {
			sum += v * v
		}
		cost, _ := obj.Cost(theta)
		testutil.RequireRelative(t, "sum r^2 vs cost", sum, cost, 1e-12)
	}
}

func TestObjectiveErrors(t *testing.T) {
	m, obs := spectralScenario(t)

	if _, err := NewSumSquared(m, obs[:10]); !errdefs.IsShape(err) {
		t.Fatalf("short observed: got %v, want shape error", err)
	}
	if _, err := NewChiSquared(m, obs, make([]float64, 3)); !errdefs.IsShape(err) {
		t.Fatalf("variance length: got %v, want shape error", err)
	}
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewChiSquaredScalar(m, obs, v); !errdefs.IsDomain(err) {
			t.Fatalf("variance %v: got %v, want domain error", v, err)
		}
	}

	variance := make([]float64, len(obs))
	for k := range variance {
		variance[k] = 1
	}
	variance[17] = 0
	if _, err := NewChiSquared(m, obs, variance); !errdefs.IsDomain(err) {
		t.Fatalf("zero variance entry: got %v, want domain error", err)
	}

	sse, _ := NewSumSquared(m, obs)
	if _, err := sse.Cost([]float64{1, 97, 0, 1}); !errdefs.IsDomain(err) {
		t.Fatalf("zero sigma: got %v, want domain error", err)
	}
	if err := sse.Residuals(make([]float64, 3), trueSpectral); !errdefs.IsShape(err) {
		t.Fatalf("short residual dst: got %v, want shape error", err)
	}
}

func TestObjectiveCopiesObserved(t *testing.T) {
	m, obs := spectralScenario(t)
	sse, _ := NewSumSquared(m, obs)
	obs[0] += 100
	if c, _ := sse.Cost(trueSpectral); c != 0 {
		t.Fatalf("objective aliases observed slice: cost %v", c)
	}
}

func TestReducedChiSquared(t *testing.T) {
	r, err := ReducedChiSquared(252, 256, 4)
	if err != nil {
		t.Fatalf("ReducedChiSquared: %v", err)
	}
	testutil.RequireNear(t, "reduced", r, 1, 0)

	for _, n := range []int{4, 3} {
		r, err := ReducedChiSquared(1, n, 4)
		if !errdefs.IsDomain(err) || !math.IsNaN(r) {
			t.Fatalf("n=%d: got %v, %v; want NaN and domain error", n, r, err)
		}
	}
}
