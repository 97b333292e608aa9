// Package noise estimates per-channel noise levels of a spectral cube.
//
// The estimators assume the noise is homogeneous across the pixels of one
// channel but may differ between channels. Non-finite pixels (NaN, Inf) are
// treated as missing and excluded from every statistic.
package noise

import (
	"math"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
)

// Config controls which pixels enter the channel statistics.
type Config struct {
	// Exclude reports pixels to leave out, typically the source itself.
	Exclude func(i, j int) bool
}

// Option mutates a Config.
type Option func(*Config)

// WithExclusion skips every pixel for which exclude returns true.
func WithExclusion(exclude func(i, j int) bool) Option {
	return func(cfg *Config) {
		cfg.Exclude = exclude
	}
}

// CircularExclusion returns a mask covering pixels within radius of (i0, j0).
func CircularExclusion(i0, j0, radius float64) func(i, j int) bool {
	r2 := radius * radius
	return func(i, j int) bool {
		di := float64(i) - i0
		dj := float64(j) - j0
		return di*di+dj*dj <= r2
	}
}

func applyOptions(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ChannelVariances returns the unbiased sample variance of each channel.
// A channel with fewer than two valid pixels yields an insufficient-data
// error.
func ChannelVariances(c *cube.Cube, opts ...Option) ([]float64, error) {
	if c == nil {
		return nil, errdefs.Shapef("noise estimation requires a cube")
	}
	cfg := applyOptions(opts...)
	nk, _, nj := c.Shape()
	out := make([]float64, nk)
	for k := range out {
		var acc Accumulator
		data := c.ChannelData(k)
		if cfg.Exclude == nil {
			acc.Update(data)
		} else {
			for n, v := range data {
				if cfg.Exclude(n/nj, n%nj) {
					continue
				}
				acc.Add(v)
			}
		}
		v, err := acc.Variance()
		if err != nil {
			return nil, errdefs.InsufficientDataf("channel %d: %d valid pixels, need at least 2", k, acc.Count())
		}
		out[k] = v
	}
	return out, nil
}

// ChannelSigmas returns the per-channel noise standard deviation.
func ChannelSigmas(c *cube.Cube, opts ...Option) ([]float64, error) {
	v, err := ChannelVariances(c, opts...)
	if err != nil {
		return nil, err
	}
	for k := range v {
		v[k] = math.Sqrt(v[k])
	}
	return v, nil
}

// ImageVariance returns the unbiased sample variance of a single image,
// given as flat pixel values.
func ImageVariance(values []float64) (float64, error) {
	var acc Accumulator
	acc.Update(values)
	return acc.Variance()
}
