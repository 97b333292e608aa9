// Package fit turns a model and observed data into a scalar objective and
// minimizes it.
//
// The split between fixed data and varying parameters is explicit: a [Model]
// captures its independent variables (frequency axis, coordinate grid) at
// construction, an [Objective] captures the observations and optional
// variances, and only the parameter vector theta flows through the
// minimizer.
//
//	m := model.NewSpectralModel(axis)
//	obj, err := fit.NewChiSquared(m, spectrum, variances)
//	res, err := fit.New().Fit(obj, guess, fit.Unbounded(), fit.Unbounded(), fit.Positive(), fit.Unbounded())
//
// Numerical minimization is delegated to a [Minimizer]. The default is a
// Levenberg-Marquardt driver on the residual vector; Nelder-Mead and BFGS are
// available through gonum/optimize. A minimizer that fails to converge is not
// an error: [Result.Success] is false and the best parameters found are
// returned.
package fit
