package fit

import (
	"fmt"
	"strings"
)

// Problem is what a Minimizer sees: an unconstrained function of Dim
// parameters. Residuals, when set, returns the Size-element residual vector
// whose squared norm is Func.
type Problem struct {
	Dim       int
	Size      int
	Func      func(x []float64) float64
	Residuals func(dst, x []float64)
}

// Settings are passed through to the minimizer unchanged.
type Settings struct {
	// MaxIterations bounds the number of major iterations.
	MaxIterations int
	// Tolerance is the relative step and cost-change tolerance.
	Tolerance float64
	// GradientTolerance stops when the gradient infinity norm falls below it.
	GradientTolerance float64
}

// Solution is the raw minimizer output.
type Solution struct {
	X           []float64
	F           float64
	Converged   bool
	Status      string
	Iterations  int
	Evaluations int
}

// Minimizer finds a local minimum of p near x0.
type Minimizer interface {
	Minimize(p Problem, x0 []float64, s Settings) (Solution, error)
}

// Method selects a built-in minimizer.
type Method int

const (
	MethodLevenbergMarquardt Method = iota
	MethodNelderMead
	MethodBFGS
)

func (m Method) String() string {
	switch m {
	case MethodLevenbergMarquardt:
		return "levenberg-marquardt"
	case MethodNelderMead:
		return "nelder-mead"
	case MethodBFGS:
		return "bfgs"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the names returned by Method.String plus the short
// forms "lm" and "nm".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "levenberg-marquardt", "lm":
		return MethodLevenbergMarquardt, nil
	case "nelder-mead", "nm":
		return MethodNelderMead, nil
	case "bfgs":
		return MethodBFGS, nil
	default:
		return 0, fmt.Errorf("unknown fit method %q", s)
	}
}

func (m Method) minimizer() Minimizer {
	switch m {
	case MethodNelderMead:
		return NelderMead{}
	case MethodBFGS:
		return BFGS{}
	default:
		return LevenbergMarquardt{}
	}
}
