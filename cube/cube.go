// Package cube holds the data model for spectral data cubes: the frequency
// axis, the (channel, row, column) cube itself and the spatial coordinate grid.
//
// Channels are exchanged as gonum dense matrices; spectra as plain slices.
package cube

import (
	"math"

	"github.com/cwbudde/algo-cubefit/errdefs"
	"gonum.org/v1/gonum/mat"
)

// Cube is a 3D array of real values indexed (k, i, j): k over channels,
// i and j over the two spatial axes. All channels share one spatial shape.
type Cube struct {
	nk, ni, nj int
	data       []float64
}

// New returns a zero-filled cube with nk channels of ni x nj pixels.
func New(nk, ni, nj int) (*Cube, error) {
	if nk <= 0 || ni <= 0 || nj <= 0 {
		return nil, errdefs.Shapef("cube dimensions must be > 0: %dx%dx%d", nk, ni, nj)
	}
	return &Cube{nk: nk, ni: ni, nj: nj, data: make([]float64, nk*ni*nj)}, nil
}

// FromChannels builds a cube by copying the given channel images.
func FromChannels(channels []*mat.Dense) (*Cube, error) {
	if len(channels) == 0 {
		return nil, errdefs.Shapef("cube requires at least one channel")
	}
	if channels[0] == nil {
		return nil, errdefs.Shapef("channel 0 is nil")
	}
	ni, nj := channels[0].Dims()
	c, err := New(len(channels), ni, nj)
	if err != nil {
		return nil, err
	}
	for k, ch := range channels {
		if ch == nil {
			return nil, errdefs.Shapef("channel %d is nil", k)
		}
		r, cols := ch.Dims()
		if r != ni || cols != nj {
			return nil, errdefs.Shapef("channel %d is %dx%d, want %dx%d", k, r, cols, ni, nj)
		}
		base := k * ni * nj
		for i := 0; i < ni; i++ {
			for j := 0; j < nj; j++ {
				c.data[base+i*nj+j] = ch.At(i, j)
			}
		}
	}
	return c, nil
}

// Shape returns the channel count and the spatial dimensions.
func (c *Cube) Shape() (nk, ni, nj int) { return c.nk, c.ni, c.nj }

// Channels returns the number of channels.
func (c *Cube) Channels() int { return c.nk }

func (c *Cube) offset(k, i, j int) int {
	if k < 0 || k >= c.nk || i < 0 || i >= c.ni || j < 0 || j >= c.nj {
		panic("cube: index out of range")
	}
	return (k*c.ni+i)*c.nj + j
}

// At returns the value at channel k, row i, column j.
func (c *Cube) At(k, i, j int) float64 { return c.data[c.offset(k, i, j)] }

// Set stores v at channel k, row i, column j.
func (c *Cube) Set(k, i, j int, v float64) { c.data[c.offset(k, i, j)] = v }

// ChannelData returns the row-major pixels of channel k. The slice aliases
// the cube storage and must not be modified.
func (c *Cube) ChannelData(k int) []float64 {
	if k < 0 || k >= c.nk {
		panic("cube: channel out of range")
	}
	n := c.ni * c.nj
	return c.data[k*n : (k+1)*n : (k+1)*n]
}

// Channel returns a copy of channel k as an ni x nj matrix.
func (c *Cube) Channel(k int) *mat.Dense {
	return mat.NewDense(c.ni, c.nj, append([]float64(nil), c.ChannelData(k)...))
}

// Spectrum returns the values of pixel (i, j) across all channels.
func (c *Cube) Spectrum(i, j int) []float64 {
	out := make([]float64, c.nk)
	for k := range out {
		out[k] = c.At(k, i, j)
	}
	return out
}

// SumSpectrum returns the spatial sum of each channel. Non-finite pixels are
// skipped.
func (c *Cube) SumSpectrum() []float64 {
	out := make([]float64, c.nk)
	for k := range out {
		var sum float64
		for _, v := range c.ChannelData(k) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
		}
		out[k] = sum
	}
	return out
}
