//go:build fastmath

package model

import "github.com/meko-christian/algo-approx"

// mathExp computes e^x using the fast approximation. The peak of a profile
// (x == 0) is no longer guaranteed to be bit-exact under this build tag.
func mathExp(x float64) float64 {
	if x < minExpArg {
		return 0
	}
	return approx.FastExp(x)
}

// minExpArg is the argument below which e^x underflows to zero.
const minExpArg = -745.2
