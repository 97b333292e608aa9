package fit

import (
	"math"

	"github.com/cwbudde/algo-cubefit/errdefs"
)

// Fitter drives a Minimizer over an Objective. It keeps no state between
// calls and is safe for concurrent use.
type Fitter struct {
	cfg Config
}

// New creates a Fitter.
func New(opts ...Option) *Fitter {
	return &Fitter{cfg: ApplyOptions(opts...)}
}

// Config returns the fitter configuration.
func (f *Fitter) Config() Config { return f.cfg }

func (f *Fitter) minimizer() Minimizer {
	if f.cfg.Minimizer != nil {
		return f.cfg.Minimizer
	}
	return f.cfg.Method.minimizer()
}

func (f *Fitter) methodName() string {
	if f.cfg.Minimizer != nil {
		return "custom"
	}
	return f.cfg.Method.String()
}

// Fit minimizes obj starting from initial. bounds is empty or holds one
// Bound per parameter; initial values outside their bound are clamped.
//
// Precondition failures (parameter count, bounds, an initial guess the
// model cannot evaluate) are returned as errors. Non-convergence is not:
// the Result then has Success == false and the best parameters found.
func (f *Fitter) Fit(obj Objective, initial []float64, bounds ...Bound) (Result, error) {
	if obj == nil {
		return Result{}, errdefs.Configurationf("fit requires an objective")
	}
	nParams := obj.NumParams()
	if len(initial) != nParams {
		return Result{}, errdefs.Configurationf("initial guess has %d values, model takes %d", len(initial), nParams)
	}
	if err := validateBounds(bounds, nParams); err != nil {
		return Result{}, err
	}

	tr := transform{bounds: bounds}
	u0 := tr.toInternal(initial)
	x0 := tr.toExternal(nil, u0)
	cost0, err := obj.Cost(x0)
	if err != nil {
		return Result{}, err
	}

	nPoints := obj.NumPoints()
	ext := make([]float64, nParams)
	problem := Problem{
		Dim:  nParams,
		Size: nPoints,
		Func: func(u []float64) float64 {
			c, err := obj.Cost(tr.toExternal(ext, u))
			if err != nil || math.IsNaN(c) {
				return math.Inf(1)
			}
			return c
		},
		Residuals: func(dst, u []float64) {
			if err := obj.Residuals(dst, tr.toExternal(ext, u)); err != nil {
				for k := range dst {
					dst[k] = math.NaN()
				}
			}
		},
	}

	sol, err := f.minimizer().Minimize(problem, u0, Settings{
		MaxIterations:     f.cfg.MaxIterations,
		Tolerance:         f.cfg.Tolerance,
		GradientTolerance: f.cfg.GradientTolerance,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Success:           sol.Converged,
		Status:            sol.Status,
		Method:            f.methodName(),
		InitialCost:       cost0,
		Iterations:        sol.Iterations,
		Evaluations:       sol.Evaluations,
		NumPoints:         nPoints,
		NumParams:         nParams,
		ReducedChiSquared: math.NaN(),
	}

	params := x0
	cost := cost0
	if len(sol.X) == nParams {
		cand := tr.toExternal(nil, sol.X)
		if c, err := obj.Cost(cand); err == nil && c <= cost0 {
			params, cost = cand, c
		} else {
			res.Success = false
		}
	} else {
		res.Success = false
	}
	res.Params = params
	res.Cost = cost

	_, weighted := obj.(*ChiSquared)
	if weighted {
		if r, err := ReducedChiSquared(cost, nPoints, nParams); err == nil {
			res.ReducedChiSquared = r
		}
	}
	res.StdErrors = stdErrors(obj, params, cost, weighted)
	return res, nil
}
