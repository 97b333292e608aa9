package cube

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-cubefit/errdefs"
	"gonum.org/v1/gonum/floats"
)

// Axis is a strictly increasing frequency axis in GHz, one value per channel.
// Treat it as immutable; constructors copy their input.
type Axis []float64

// NewAxis validates values and returns an Axis backed by a copy.
func NewAxis(values []float64) (Axis, error) {
	if len(values) == 0 {
		return nil, errdefs.Shapef("axis requires at least one value")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errdefs.Domainf("axis value at index %d is not finite: %v", i, v)
		}
		if i > 0 && !(v > values[i-1]) {
			return nil, errdefs.Domainf("axis must be strictly increasing at index %d", i)
		}
	}
	return Axis(append([]float64(nil), values...)), nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) (Axis, error) {
	if n < 2 {
		return nil, errdefs.Shapef("linspace requires n >= 2: %d", n)
	}
	if !(hi > lo) {
		return nil, errdefs.Domainf("linspace requires hi > lo: %v <= %v", hi, lo)
	}
	return Axis(floats.Span(make([]float64, n), lo, hi)), nil
}

// Len returns the number of channels on the axis.
func (a Axis) Len() int { return len(a) }

// At returns the frequency of channel k.
func (a Axis) At(k int) float64 { return a[k] }

// Values returns a copy of the axis values.
func (a Axis) Values() []float64 { return append([]float64(nil), a...) }

// Step returns the mean channel spacing, or 0 for a single-channel axis.
func (a Axis) Step() float64 {
	if len(a) < 2 {
		return 0
	}
	return (a[len(a)-1] - a[0]) / float64(len(a)-1)
}

// Index returns the channel whose frequency is nearest to f.
func (a Axis) Index(f float64) int {
	if len(a) == 0 {
		return -1
	}
	j := sort.SearchFloat64s(a, f)
	switch {
	case j == 0:
		return 0
	case j == len(a):
		return len(a) - 1
	case f-a[j-1] <= a[j]-f:
		return j - 1
	default:
		return j
	}
}
