package fit

import (
	"math"

	"github.com/cwbudde/algo-cubefit/errdefs"
)

// Bound is a closed interval for one parameter. Use math.Inf for an open
// side.
type Bound struct {
	Min, Max float64
}

// Unbounded leaves a parameter free.
func Unbounded() Bound { return Bound{Min: math.Inf(-1), Max: math.Inf(1)} }

// PositiveFloor is the lower limit of Positive. Its square is still a
// normal float64.
const PositiveFloor = 1e-150

// Positive keeps a parameter at or above PositiveFloor, which keeps
// Gaussian widths away from zero.
func Positive() Bound { return Bound{Min: PositiveFloor, Max: math.Inf(1)} }

// AtLeast bounds a parameter from below.
func AtLeast(lo float64) Bound { return Bound{Min: lo, Max: math.Inf(1)} }

// AtMost bounds a parameter from above.
func AtMost(hi float64) Bound { return Bound{Min: math.Inf(-1), Max: hi} }

// Between bounds a parameter on both sides.
func Between(lo, hi float64) Bound { return Bound{Min: lo, Max: hi} }

func (b Bound) lowerFinite() bool { return !math.IsInf(b.Min, -1) }
func (b Bound) upperFinite() bool { return !math.IsInf(b.Max, 1) }

// Clamp returns x limited to the interval.
func (b Bound) Clamp(x float64) float64 {
	return math.Min(math.Max(x, b.Min), b.Max)
}

func validateBounds(bounds []Bound, nParams int) error {
	if len(bounds) == 0 {
		return nil
	}
	if len(bounds) != nParams {
		return errdefs.Configurationf("got %d bounds for %d parameters", len(bounds), nParams)
	}
	for k, b := range bounds {
		if math.IsNaN(b.Min) || math.IsNaN(b.Max) {
			return errdefs.Configurationf("bound %d is NaN", k)
		}
		if b.Min > b.Max {
			return errdefs.Configurationf("bound %d has min %v > max %v", k, b.Min, b.Max)
		}
		if math.IsInf(b.Min, 1) || math.IsInf(b.Max, -1) {
			return errdefs.Configurationf("bound %d is empty", k)
		}
	}
	return nil
}

// A start point exactly on a bound sits where the map is flat and the
// minimizer could never leave it, so internal start values keep a small
// distance from those points.
const (
	edgeLimit  = 1 - 1e-8
	edgeOffset = 1e-4
)

// transform maps between the external (bounded) parameters seen by the
// objective and the internal (unbounded) ones seen by the minimizer:
// a sine map for two-sided bounds, a square-root map for one-sided bounds
// and the identity for free parameters.
type transform struct {
	bounds []Bound
}

func (t transform) toExternal(dst, internal []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(internal))
	}
	if len(t.bounds) == 0 {
		copy(dst, internal)
		return dst
	}
	for k, u := range internal {
		b := t.bounds[k]
		switch {
		case b.lowerFinite() && b.upperFinite():
			dst[k] = b.Min + (b.Max-b.Min)*(math.Sin(u)+1)/2
		case b.lowerFinite():
			dst[k] = b.Min - 1 + math.Sqrt(u*u+1)
		case b.upperFinite():
			dst[k] = b.Max + 1 - math.Sqrt(u*u+1)
		default:
			dst[k] = u
		}
		// Rounding can leave the mapped value a few ulps outside.
		dst[k] = b.Clamp(dst[k])
	}
	return dst
}

func (t transform) toInternal(external []float64) []float64 {
	out := make([]float64, len(external))
	if len(t.bounds) == 0 {
		copy(out, external)
		return out
	}
	for k, x := range external {
		b := t.bounds[k]
		x = b.Clamp(x)
		switch {
		case b.lowerFinite() && b.upperFinite():
			if b.Max == b.Min {
				out[k] = 0
				continue
			}
			s := 2*(x-b.Min)/(b.Max-b.Min) - 1
			out[k] = math.Asin(math.Max(-edgeLimit, math.Min(edgeLimit, s)))
		case b.lowerFinite():
			d := x - b.Min + 1
			out[k] = math.Max(math.Sqrt(d*d-1), edgeOffset)
		case b.upperFinite():
			d := b.Max - x + 1
			out[k] = math.Max(math.Sqrt(d*d-1), edgeOffset)
		default:
			out[k] = x
		}
	}
	return out
}
