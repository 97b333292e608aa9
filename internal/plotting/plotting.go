// Package plotting renders fit diagnostics to image files with gonum/plot.
package plotting

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
	// curveSamples is the resolution of model curves.
	curveSamples = 400
)

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Spectrum draws the observed spectrum, with 1-sigma error bars when
// variances are given, and the fitted line + continuum model. The file
// format follows the extension of path.
func Spectrum(path string, axis cube.Axis, observed, variances []float64, fitted model.SpectralParams) error {
	if len(observed) != axis.Len() {
		return fmt.Errorf("plot spectrum: %d values for %d channels", len(observed), axis.Len())
	}
	p := plot.New()
	p.Title.Text = "Spectrum"
	p.X.Label.Text = "Frequency [GHz]"
	p.Y.Label.Text = "Flux density"

	pts := make(plotter.XYs, len(observed))
	for k, v := range observed {
		pts[k].X = axis.At(k)
		pts[k].Y = v
	}
	data, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	data.GlyphStyle.Color = plotutil.Color(0)
	data.GlyphStyle.Radius = vg.Points(2)
	p.Add(data)
	p.Legend.Add("observed", data)

	if len(variances) == len(observed) {
		errs := make(plotter.YErrors, len(variances))
		for k, v := range variances {
			s := math.Sqrt(v)
			errs[k].Low, errs[k].High = s, s
		}
		bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: errs})
		if err != nil {
			return err
		}
		bars.LineStyle.Color = plotutil.Color(0)
		p.Add(bars)
	}

	lo, hi := axis.At(0), axis.At(axis.Len()-1)
	freqs := make([]float64, curveSamples)
	for n := range freqs {
		freqs[n] = lo + (hi-lo)*float64(n)/float64(curveSamples-1)
	}
	curve, err := model.EvaluateSpectral(freqs, fitted)
	if err != nil {
		return err
	}
	if err := addCurve(p, "model", freqs, curve, 1); err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// Profile draws channel pixel values against their distance from the
// fitted center together with the fitted radial profile.
func Profile(path string, g cube.Grid, image *mat.Dense, fitted model.BrightnessParams) error {
	ni, nj := g.Dims()
	ri, rj := image.Dims()
	if ri != ni || rj != nj {
		return fmt.Errorf("plot profile: image is %dx%d, grid is %dx%d", ri, rj, ni, nj)
	}
	p := plot.New()
	p.Title.Text = "Radial profile"
	p.X.Label.Text = "Radius [pixel]"
	p.Y.Label.Text = "Brightness"

	pts := make(plotter.XYs, 0, ni*nj)
	rmax := 0.0
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			r := math.Hypot(g.II.At(i, j)-fitted.I0, g.JJ.At(i, j)-fitted.J0)
			rmax = math.Max(rmax, r)
			pts = append(pts, plotter.XY{X: r, Y: image.At(i, j)})
		}
	}
	data, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	data.GlyphStyle.Color = plotutil.Color(0)
	data.GlyphStyle.Radius = vg.Points(1)
	p.Add(data)
	p.Legend.Add("pixels", data)

	radii := make([]float64, curveSamples)
	curve := make([]float64, curveSamples)
	for n := range radii {
		radii[n] = rmax * float64(n) / float64(curveSamples-1)
		curve[n] = fitted.Amplitude * math.Exp(-0.5*radii[n]*radii[n]/(fitted.Sigma*fitted.Sigma))
	}
	if err := addCurve(p, "model", radii, curve, 1); err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// ChannelFlux draws the integrated flux of per-channel brightness fits
// against frequency. Channels with a failed fit are skipped.
func ChannelFlux(path string, axis cube.Axis, fits []model.BrightnessParams, ok []bool) error {
	if len(fits) != axis.Len() || len(ok) != len(fits) {
		return fmt.Errorf("plot channel flux: %d fits for %d channels", len(fits), axis.Len())
	}
	p := plot.New()
	p.Title.Text = "Channel flux"
	p.X.Label.Text = "Frequency [GHz]"
	p.Y.Label.Text = "Integrated flux"

	pts := make(plotter.XYs, 0, len(fits))
	for k, f := range fits {
		if !ok[k] {
			continue
		}
		pts = append(pts, plotter.XY{X: axis.At(k), Y: model.TotalFlux(f)})
	}
	if len(pts) == 0 {
		return fmt.Errorf("plot channel flux: no successful fits")
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(2)
	points.Color = plotutil.Color(2)
	p.Add(line, points)
	return p.Save(width, height, path)
}

func addCurve(p *plot.Plot, label string, xs, ys []float64, color int) error {
	xy := make(plotter.XYs, len(xs))
	for n := range xs {
		xy[n].X, xy[n].Y = xs[n], ys[n]
	}
	line, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	line.LineStyle.Color = plotutil.Color(color)
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}
