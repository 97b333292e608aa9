package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-cubefit/fit"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CUBEFIT"

// settings is the resolved configuration of one run.
type settings struct {
	Channels int
	Size     int
	FMin     float64
	FMax     float64
	Seed     int64

	LineAmp     float64
	LineFreq    float64
	LineSigma   float64
	Continuum   float64
	SourceSigma float64
	NoiseLo     float64
	NoiseHi     float64

	Method  string
	MaxIter int
	Tol     float64
	Workers int

	Plot     string
	LogLevel string
}

func addSharedFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")

	fs.Int("channels", 128, "number of frequency channels")
	fs.Int("size", 32, "spatial size in pixels (size x size)")
	fs.Float64("fmin", 90, "lowest channel frequency [GHz]")
	fs.Float64("fmax", 106, "highest channel frequency [GHz]")
	fs.Int64("seed", 1, "noise seed")

	fs.Float64("line-amp", 6, "line amplitude at the source center")
	fs.Float64("line-freq", 97.8, "line center frequency [GHz]")
	fs.Float64("line-sigma", 0.5, "line width sigma [GHz]")
	fs.Float64("continuum", 1.3, "continuum level at the source center")
	fs.Float64("source-sigma", 3, "spatial source sigma [pixel]")
	fs.Float64("noise-lo", 0.2, "noise sigma of the first channel")
	fs.Float64("noise-hi", 0.2, "noise sigma of the last channel")

	fs.String("method", "levenberg-marquardt", "minimizer (levenberg-marquardt, nelder-mead, bfgs)")
	fs.Int("max-iter", 200, "minimizer iteration limit")
	fs.Float64("tol", 1e-10, "relative convergence tolerance")
	fs.Int("workers", 0, "parallel channel fits (0 = GOMAXPROCS)")
	fs.String("plot", "", "write a diagnostic plot to this file")
}

// loadSettings resolves flags, environment and config file, in that order
// of precedence.
func loadSettings(v *viper.Viper, fs *pflag.FlagSet) (settings, error) {
	if err := v.BindPFlags(fs); err != nil {
		return settings{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	s := settings{
		Channels:    v.GetInt("channels"),
		Size:        v.GetInt("size"),
		FMin:        v.GetFloat64("fmin"),
		FMax:        v.GetFloat64("fmax"),
		Seed:        v.GetInt64("seed"),
		LineAmp:     v.GetFloat64("line-amp"),
		LineFreq:    v.GetFloat64("line-freq"),
		LineSigma:   v.GetFloat64("line-sigma"),
		Continuum:   v.GetFloat64("continuum"),
		SourceSigma: v.GetFloat64("source-sigma"),
		NoiseLo:     v.GetFloat64("noise-lo"),
		NoiseHi:     v.GetFloat64("noise-hi"),
		Method:      v.GetString("method"),
		MaxIter:     v.GetInt("max-iter"),
		Tol:         v.GetFloat64("tol"),
		Workers:     v.GetInt("workers"),
		Plot:        v.GetString("plot"),
		LogLevel:    v.GetString("log-level"),
	}
	return s, s.validate()
}

func (s settings) validate() error {
	if s.Channels < 2 {
		return fmt.Errorf("channels must be >= 2: %d", s.Channels)
	}
	if s.Size < 2 {
		return fmt.Errorf("size must be >= 2: %d", s.Size)
	}
	if s.FMax <= s.FMin {
		return fmt.Errorf("fmax must exceed fmin: %g <= %g", s.FMax, s.FMin)
	}
	if s.NoiseLo < 0 || s.NoiseHi < 0 {
		return fmt.Errorf("noise sigma must be >= 0: %g, %g", s.NoiseLo, s.NoiseHi)
	}
	if s.SourceSigma <= 0 {
		return fmt.Errorf("source sigma must be > 0: %g", s.SourceSigma)
	}
	_, err := fit.ParseMethod(s.Method)
	return err
}

// fitOptions translates the minimizer settings into Fitter options.
func (s settings) fitOptions() []fit.Option {
	m, _ := fit.ParseMethod(s.Method)
	return []fit.Option{
		fit.WithMethod(m),
		fit.WithMaxIterations(s.MaxIter),
		fit.WithTolerance(s.Tol),
	}
}

// center is the spatial position of the synthetic source.
func (s settings) center() float64 { return float64(s.Size-1) / 2 }
