package fit

// Config holds Fitter settings.
type Config struct {
	Method            Method
	MaxIterations     int
	Tolerance         float64
	GradientTolerance float64
	// Minimizer overrides Method when set.
	Minimizer Minimizer
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns Levenberg-Marquardt with tolerances tight enough to
// recover noiseless parameters to well below 1e-6.
func DefaultConfig() Config {
	return Config{
		Method:            MethodLevenbergMarquardt,
		MaxIterations:     200,
		Tolerance:         1e-10,
		GradientTolerance: 1e-14,
	}
}

// WithMethod selects a built-in minimizer.
func WithMethod(m Method) Option {
	return func(cfg *Config) {
		cfg.Method = m
	}
}

// WithMaxIterations sets the minimizer iteration limit.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithTolerance sets the relative step and cost tolerance.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 {
			cfg.Tolerance = tol
		}
	}
}

// WithGradientTolerance sets the gradient infinity-norm threshold.
func WithGradientTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol >= 0 {
			cfg.GradientTolerance = tol
		}
	}
}

// WithMinimizer plugs in an external minimizer.
func WithMinimizer(m Minimizer) Option {
	return func(cfg *Config) {
		cfg.Minimizer = m
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
