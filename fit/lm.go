package fit

import (
	"math"

	"github.com/cwbudde/algo-cubefit/errdefs"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const defaultTau = 1e-3

// LevenbergMarquardt minimizes a sum of squared residuals with a damped
// Gauss-Newton iteration. The Jacobian is estimated by central differences.
//
// Damping follows the gain-ratio update: it starts at Tau times the largest
// diagonal entry of J^T J, shrinks after good steps and doubles
// geometrically after rejected ones.
type LevenbergMarquardt struct {
	// Tau scales the initial damping. Zero selects 1e-3.
	Tau float64
}

// Minimize implements Minimizer. p.Residuals is required.
func (lm LevenbergMarquardt) Minimize(p Problem, x0 []float64, s Settings) (Solution, error) {
	if p.Residuals == nil || p.Size <= 0 {
		return Solution{}, errdefs.Configurationf("levenberg-marquardt requires a residual function")
	}
	if len(x0) != p.Dim {
		return Solution{}, errdefs.Configurationf("initial point has %d values, problem has %d", len(x0), p.Dim)
	}
	tau := lm.Tau
	if tau <= 0 {
		tau = defaultTau
	}

	var evals int
	resid := func(dst, x []float64) {
		evals++
		p.Residuals(dst, x)
	}
	halfNorm := func(r []float64) float64 {
		return 0.5 * floats.Dot(r, r)
	}

	n, m := p.Dim, p.Size
	x := append([]float64(nil), x0...)
	r := make([]float64, m)
	resid(r, x)
	f := halfNorm(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Solution{X: x, F: 2 * f, Status: "non-finite initial cost", Evaluations: evals}, nil
	}

	jac := mat.NewDense(m, n, nil)
	var jtj mat.SymDense
	g := mat.NewVecDense(n, nil)
	linearize := func() {
		fd.Jacobian(jac, resid, x, &fd.JacobianSettings{Formula: fd.Central, OriginValue: r})
		jtj.SymOuterK(1, jac.T())
		g.MulVec(jac.T(), mat.NewVecDense(m, r))
	}
	linearize()

	sol := Solution{Status: "iteration limit"}
	if gradInf(g) <= s.GradientTolerance {
		sol.Converged, sol.Status = true, "gradient threshold"
	}

	mu := 0.0
	for k := 0; k < n; k++ {
		mu = math.Max(mu, jtj.At(k, k))
	}
	mu *= tau
	if mu == 0 {
		mu = tau
	}
	nu := 2.0

	damped := mat.NewSymDense(n, nil)
	h := mat.NewVecDense(n, nil)
	negG := mat.NewVecDense(n, nil)
	xNew := make([]float64, n)
	rNew := make([]float64, m)
	var chol mat.Cholesky

	iter := 0
	for ; !sol.Converged && iter < s.MaxIterations; iter++ {
		damped.CopySym(&jtj)
		for k := 0; k < n; k++ {
			damped.SetSym(k, k, damped.At(k, k)+mu)
		}
		if ok := chol.Factorize(damped); !ok {
			mu *= nu
			nu *= 2
			continue
		}
		negG.ScaleVec(-1, g)
		if err := chol.SolveVecTo(h, negG); err != nil {
			mu *= nu
			nu *= 2
			continue
		}

		if floats.Norm(h.RawVector().Data, 2) <= s.Tolerance*(floats.Norm(x, 2)+s.Tolerance) {
			sol.Converged, sol.Status = true, "step convergence"
			break
		}

		for k := range xNew {
			xNew[k] = x[k] + h.AtVec(k)
		}
		resid(rNew, xNew)
		fNew := halfNorm(rNew)

		// Predicted reduction of the linear model: 0.5 * h^T (mu*h - g).
		var predicted float64
		for k := 0; k < n; k++ {
			predicted += h.AtVec(k) * (mu*h.AtVec(k) - g.AtVec(k))
		}
		predicted *= 0.5
		rho := (f - fNew) / predicted

		if !(rho > 0) || math.IsNaN(fNew) || math.IsInf(fNew, 0) {
			mu *= nu
			nu *= 2
			continue
		}

		decrease := f - fNew
		copy(x, xNew)
		copy(r, rNew)
		f = fNew
		linearize()

		switch {
		case gradInf(g) <= s.GradientTolerance:
			sol.Converged, sol.Status = true, "gradient threshold"
		case decrease <= s.Tolerance*f:
			sol.Converged, sol.Status = true, "cost convergence"
		case f == 0:
			sol.Converged, sol.Status = true, "zero cost"
		}
		mu *= math.Max(1.0/3, 1-math.Pow(2*rho-1, 3))
		nu = 2
	}

	sol.X = x
	sol.F = 2 * f
	sol.Iterations = iter
	sol.Evaluations = evals
	return sol, nil
}

func gradInf(g *mat.VecDense) float64 {
	var maxAbs float64
	for k := 0; k < g.Len(); k++ {
		maxAbs = math.Max(maxAbs, math.Abs(g.AtVec(k)))
	}
	return maxAbs
}
