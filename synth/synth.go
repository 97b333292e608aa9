// Package synth builds deterministic synthetic spectral cubes: a compact
// source with a Gaussian line spectrum and a circular Gaussian spatial
// profile, plus Gaussian noise whose level may vary from channel to
// channel.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/model"
)

// Source describes the emitting object. The pixel at the spatial center
// carries Spatial.Amplitude times the spectral profile; other pixels are
// attenuated by the spatial Gaussian.
type Source struct {
	Spectral model.SpectralParams
	Spatial  model.BrightnessParams
}

// Generator creates reproducible cubes.
type Generator struct {
	seed  int64
	noise func(k int) float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for the noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithNoise sets the noise standard deviation of channel k.
func WithNoise(sigma func(k int) float64) Option {
	return func(g *Generator) {
		g.noise = sigma
	}
}

// ConstantNoise returns the same sigma for every channel.
func ConstantNoise(sigma float64) func(k int) float64 {
	return func(int) float64 { return sigma }
}

// LinearNoise ramps the noise sigma from lo at channel 0 to hi at channel
// nk-1.
func LinearNoise(lo, hi float64, nk int) func(k int) float64 {
	return func(k int) float64 {
		if nk < 2 {
			return lo
		}
		return lo + (hi-lo)*float64(k)/float64(nk-1)
	}
}

// NewGenerator creates a generator with seed 1 and no noise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Sigma returns the configured noise level of channel k.
func (g *Generator) Sigma(k int) float64 {
	if g.noise == nil {
		return 0
	}
	return g.noise(k)
}

// Cube renders src on an ni x nj grid for every channel of axis.
func (g *Generator) Cube(axis cube.Axis, ni, nj int, src Source) (*cube.Cube, error) {
	c, err := cube.New(axis.Len(), ni, nj)
	if err != nil {
		return nil, err
	}
	grid, err := cube.NewGrid(ni, nj)
	if err != nil {
		return nil, err
	}
	spectrum, err := model.EvaluateSpectral(axis, src.Spectral)
	if err != nil {
		return nil, fmt.Errorf("synthetic spectrum: %w", err)
	}
	profile, err := model.EvaluateBrightness(grid, src.Spatial)
	if err != nil {
		return nil, fmt.Errorf("synthetic profile: %w", err)
	}

	rng := rand.New(rand.NewSource(g.seed))
	for k, flux := range spectrum {
		sigma := g.Sigma(k)
		if sigma < 0 {
			return nil, fmt.Errorf("noise sigma must be >= 0: channel %d: %f", k, sigma)
		}
		for i := 0; i < ni; i++ {
			for j := 0; j < nj; j++ {
				v := flux * profile.At(i, j)
				if sigma > 0 {
					v += rng.NormFloat64() * sigma
				}
				c.Set(k, i, j, v)
			}
		}
	}
	return c, nil
}
