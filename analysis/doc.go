// Package analysis strings the models, noise estimator and fitter together
// into the two fits run on a cube: a line + continuum fit to a spectrum and
// a per-channel fit of the spatial brightness profile.
package analysis
