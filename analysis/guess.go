package analysis

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
	"github.com/cwbudde/algo-cubefit/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GuessSpectral derives a starting point for a line + continuum fit: the
// median as continuum, the highest channel as line center, the excess over
// the continuum as amplitude and the half-maximum extent as width.
func GuessSpectral(axis cube.Axis, spectrum []float64) (model.SpectralParams, error) {
	if len(spectrum) != axis.Len() {
		return model.SpectralParams{}, errdefs.Shapef("spectrum has %d channels, axis %d", len(spectrum), axis.Len())
	}
	finite := make([]float64, 0, len(spectrum))
	peak := -1
	for k, v := range spectrum {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
		if peak < 0 || v > spectrum[peak] {
			peak = k
		}
	}
	if len(finite) < 2 {
		return model.SpectralParams{}, errdefs.InsufficientDataf("spectrum has %d finite channels", len(finite))
	}
	sort.Float64s(finite)
	cont := stat.Quantile(0.5, stat.Empirical, finite, nil)
	amp := spectrum[peak] - cont
	if amp <= 0 {
		amp = finite[len(finite)-1] - finite[0]
	}

	half := cont + amp/2
	lo, hi := peak, peak
	for lo > 0 && !(spectrum[lo-1] < half) {
		lo--
	}
	for hi < len(spectrum)-1 && !(spectrum[hi+1] < half) {
		hi++
	}
	width := axis.At(hi) - axis.At(lo)
	if width <= 0 {
		width = axis.Step()
	}

	return model.SpectralParams{
		LineAmplitude:      amp,
		LineFrequency:      axis.At(peak),
		LineSigma:          model.SigmaFromFWHM(width),
		ContinuumAmplitude: cont,
	}, nil
}

// minGuessSigma keeps an unresolved source from starting at zero width.
const minGuessSigma = 0.5

// GuessBrightness derives a starting point for a brightness fit from the
// brightest pixel and the area above half of its value.
func GuessBrightness(g cube.Grid, image *mat.Dense) (model.BrightnessParams, error) {
	if image == nil {
		return model.BrightnessParams{}, errdefs.Shapef("brightness guess requires an image")
	}
	if err := g.Validate(); err != nil {
		return model.BrightnessParams{}, err
	}
	ni, nj := g.Dims()
	ri, rj := image.Dims()
	if ri != ni || rj != nj {
		return model.BrightnessParams{}, errdefs.Shapef("image is %dx%d, grid is %dx%d", ri, rj, ni, nj)
	}

	pi, pj, n := -1, -1, 0
	peak := math.Inf(-1)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			v := image.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			n++
			if v > peak {
				peak, pi, pj = v, i, j
			}
		}
	}
	if n == 0 {
		return model.BrightnessParams{}, errdefs.InsufficientDataf("image has no finite pixels")
	}

	area := 0
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			if image.At(i, j) >= peak/2 {
				area++
			}
		}
	}
	// A circular Gaussian exceeds half its peak within r = sqrt(2 ln 2) sigma.
	sigma := math.Sqrt(float64(area)/math.Pi) / math.Sqrt(2*math.Ln2)
	if peak <= 0 || sigma < minGuessSigma {
		sigma = minGuessSigma
	}

	return model.BrightnessParams{
		Amplitude: peak,
		I0:        g.II.At(pi, pj),
		J0:        g.JJ.At(pi, pj),
		Sigma:     sigma,
	}, nil
}
