package fit

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// NelderMead is the derivative-free simplex method from gonum/optimize.
type NelderMead struct {
	// SimplexSize is the initial simplex edge length. Zero uses the gonum default.
	SimplexSize float64
}

// Minimize implements Minimizer.
func (nm NelderMead) Minimize(p Problem, x0 []float64, s Settings) (Solution, error) {
	return runOptimize(optimize.Problem{Func: p.Func}, x0, s, &optimize.NelderMead{SimplexSize: nm.SimplexSize})
}

// BFGS is the quasi-Newton method from gonum/optimize with a
// central-difference gradient.
type BFGS struct{}

// Minimize implements Minimizer.
func (BFGS) Minimize(p Problem, x0 []float64, s Settings) (Solution, error) {
	prob := optimize.Problem{
		Func: p.Func,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, p.Func, x, &fd.Settings{Formula: fd.Central})
		},
	}
	return runOptimize(prob, x0, s, &optimize.BFGS{})
}

func runOptimize(prob optimize.Problem, x0 []float64, s Settings, method optimize.Method) (Solution, error) {
	settings := &optimize.Settings{
		MajorIterations:   s.MaxIterations,
		GradientThreshold: s.GradientTolerance,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.Tolerance * s.Tolerance,
			Relative:   s.Tolerance,
			Iterations: 25,
		},
	}
	res, err := optimize.Minimize(prob, x0, settings, method)
	if res == nil {
		return Solution{}, err
	}
	return Solution{
		X:           res.X,
		F:           res.F,
		Converged:   err == nil && converged(res.Status),
		Status:      res.Status.String(),
		Iterations:  res.Stats.MajorIterations,
		Evaluations: res.Stats.FuncEvaluations,
	}, nil
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}
