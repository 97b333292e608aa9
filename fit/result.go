package fit

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of one Fit call.
type Result struct {
	// Success reports whether the minimizer converged. A false value still
	// carries the best parameters found.
	Success bool
	Status  string
	Method  string

	Params      []float64
	Cost        float64
	InitialCost float64

	Iterations  int
	Evaluations int

	NumPoints int
	NumParams int

	// ReducedChiSquared is chi2/(NumPoints-NumParams) for chi-squared
	// objectives with positive degrees of freedom, NaN otherwise.
	ReducedChiSquared float64

	// StdErrors are 1-sigma parameter uncertainties from the inverse of
	// J^T J at the solution, nil when that matrix is singular or the
	// degrees of freedom are not positive.
	StdErrors []float64
}

// DegreesOfFreedom returns NumPoints - NumParams.
func (r Result) DegreesOfFreedom() int { return r.NumPoints - r.NumParams }

// stdErrors estimates parameter uncertainties from the residual Jacobian.
// For an unweighted objective the covariance is scaled by the residual
// variance cost/dof; chi-squared residuals are already normalized.
func stdErrors(obj Objective, params []float64, cost float64, weighted bool) []float64 {
	n, m := len(params), obj.NumPoints()
	dof := m - n
	if dof <= 0 {
		return nil
	}

	failed := false
	resid := func(dst, x []float64) {
		if err := obj.Residuals(dst, x); err != nil {
			failed = true
		}
	}
	jac := mat.NewDense(m, n, nil)
	fd.Jacobian(jac, resid, params, &fd.JacobianSettings{Formula: fd.Central})
	if failed {
		return nil
	}

	var jtj mat.SymDense
	jtj.SymOuterK(1, jac.T())
	var chol mat.Cholesky
	if ok := chol.Factorize(&jtj); !ok {
		return nil
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil
	}

	scale := 1.0
	if !weighted {
		scale = cost / float64(dof)
	}
	out := make([]float64, n)
	for k := range out {
		v := cov.At(k, k) * scale
		if !(v >= 0) || math.IsInf(v, 0) {
			return nil
		}
		out[k] = math.Sqrt(v)
	}
	return out
}
