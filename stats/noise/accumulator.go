package noise

import (
	"math"

	"github.com/cwbudde/algo-cubefit/errdefs"
)

// Accumulator tracks count, mean and variance of a sample stream using
// Welford's online algorithm. Non-finite values are counted as missing.
// The zero value is ready to use.
type Accumulator struct {
	n       int
	missing int
	mean    float64
	m2      float64
}

// Add folds one sample into the statistics.
func (a *Accumulator) Add(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		a.missing++
		return
	}
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// Update folds a block of samples into the statistics.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.Add(x)
	}
}

// Count returns the number of valid samples.
func (a *Accumulator) Count() int { return a.n }

// Missing returns the number of skipped non-finite samples.
func (a *Accumulator) Missing() int { return a.missing }

// Mean returns the mean of the valid samples, or NaN when there are none.
func (a *Accumulator) Mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.mean
}

// Variance returns the unbiased (n-1) sample variance.
func (a *Accumulator) Variance() (float64, error) {
	if a.n < 2 {
		return 0, errdefs.InsufficientDataf("variance needs at least 2 valid samples, have %d", a.n)
	}
	return a.m2 / float64(a.n-1), nil
}

// Reset clears the accumulator.
func (a *Accumulator) Reset() { *a = Accumulator{} }
