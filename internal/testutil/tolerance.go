// Package testutil holds tolerance and data helpers shared by the package tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// RequireNear fails t if got and want differ by more than eps.
func RequireNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", name, got, want, math.Abs(got-want), eps)
	}
}

// RequireRelative fails t if got deviates from want by more than the
// relative tolerance rel.
func RequireRelative(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if want == 0 {
		RequireNear(t, name, got, want, rel)
		return
	}
	if d := math.Abs(got-want) / math.Abs(want); d > rel {
		t.Fatalf("%s: got %v, want %v (relative diff %.3g > %.3g)", name, got, want, d, rel)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// GaussianNoise returns n normally distributed samples with standard
// deviation sigma, reproducible for a given seed.
func GaussianNoise(seed int64, sigma float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}
