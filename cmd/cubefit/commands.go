package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-cubefit/analysis"
	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/internal/plotting"
	"github.com/cwbudde/algo-cubefit/model"
	"github.com/cwbudde/algo-cubefit/stats/noise"
	"github.com/cwbudde/algo-cubefit/synth"
	"github.com/spf13/cobra"
)

// excludeSigmas is the radius, in source sigmas, masked out of the noise
// estimate. The mask never covers more than a third of the image width.
const excludeSigmas = 4

func (a *app) noiseOptions() []noise.Option {
	c := a.cfg.center()
	r := math.Min(excludeSigmas*a.cfg.SourceSigma, float64(a.cfg.Size)/3)
	return []noise.Option{
		noise.WithExclusion(noise.CircularExclusion(c, c, r)),
	}
}

func newNoiseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "noise",
		Short: "Estimate the noise level of every channel",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			axis, c, err := a.observe()
			if err != nil {
				return err
			}
			sigmas, err := noise.ChannelSigmas(c, a.noiseOptions()...)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Channel\tFreq (GHz)\tSigma\tInjected\n")
			fmt.Fprintf(tw, "-------\t----------\t-----\t--------\n")
			inject := synth.LinearNoise(a.cfg.NoiseLo, a.cfg.NoiseHi, a.cfg.Channels)
			for k, s := range sigmas {
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\n", k, axis.At(k), s, inject(k))
			}
			return tw.Flush()
		},
	}
}

func newSpectrumCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Fit a Gaussian line on a flat continuum to a spectrum",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			axis, c, err := a.observe()
			if err != nil {
				return err
			}
			variances, err := noise.ChannelVariances(c, a.noiseOptions()...)
			if err != nil {
				return err
			}

			var spectrum []float64
			label := "summed"
			if px := a.v.GetString("pixel"); px != "" {
				i, j, err := parsePixel(px, a.cfg.Size)
				if err != nil {
					return err
				}
				spectrum = c.Spectrum(i, j)
				label = fmt.Sprintf("pixel %d,%d", i, j)
			} else {
				spectrum = c.SumSpectrum()
				// Independent pixel noise adds up over the image.
				_, ni, nj := c.Shape()
				for k := range variances {
					variances[k] *= float64(ni * nj)
				}
			}

			res, err := analysis.FitSpectrum(axis, spectrum, variances, a.cfg.fitOptions()...)
			if err != nil {
				return err
			}
			ev := a.log.Info()
			if !res.Result.Success {
				ev = a.log.Warn()
			}
			ev.Str("spectrum", label).
				Str("status", res.Result.Status).
				Int("iterations", res.Result.Iterations).
				Msg("spectral fit done")

			printSpectrumFit(a, label, res)
			if a.cfg.Plot != "" {
				if err := plotting.Spectrum(a.cfg.Plot, axis, spectrum, variances, res.Params); err != nil {
					return err
				}
				a.log.Info().Str("file", a.cfg.Plot).Msg("plot written")
			}
			return nil
		},
	}
	cmd.Flags().String("pixel", "", "fit the spectrum of pixel i,j instead of the summed spectrum")
	return cmd
}

func printSpectrumFit(a *app, label string, res analysis.SpectrumFit) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum:\t%s\n", label)
	fmt.Fprintf(tw, "Method:\t%s\n", res.Result.Method)
	fmt.Fprintf(tw, "Status:\t%s (success=%t)\n", res.Result.Status, res.Result.Success)
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Parameter\tGuess\tValue\tError\n")
	fmt.Fprintf(tw, "---------\t-----\t-----\t-----\n")
	guess := res.Guess.Vector()
	for n, name := range model.SpectralParamNames {
		errStr := "n/a"
		if res.Result.StdErrors != nil {
			errStr = fmt.Sprintf("%.4g", res.Result.StdErrors[n])
		}
		fmt.Fprintf(tw, "%s\t%.5g\t%.6g\t%s\n", name, guess[n], res.Result.Params[n], errStr)
	}
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Line FWHM:\t%.5g GHz\n", model.FWHM(res.Params.LineSigma))
	fmt.Fprintf(tw, "Line flux:\t%.5g\n", model.LineFlux(res.Params))
	fmt.Fprintf(tw, "Cost:\t%.6g (initial %.6g)\n", res.Result.Cost, res.Result.InitialCost)
	fmt.Fprintf(tw, "Reduced chi2:\t%s\n", formatFloat(res.Result.ReducedChiSquared))
	tw.Flush()
}

func newChannelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Fit the spatial brightness profile of every channel",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			axis, c, err := a.observe()
			if err != nil {
				return err
			}
			variances, err := noise.ChannelVariances(c, a.noiseOptions()...)
			if err != nil {
				return err
			}
			g, err := cube.NewGrid(a.cfg.Size, a.cfg.Size)
			if err != nil {
				return err
			}
			fits, err := analysis.FitChannels(c, g, variances, analysis.ChannelConfig{
				Workers: a.cfg.Workers,
				Fit:     a.cfg.fitOptions(),
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Channel\tFreq (GHz)\tAmplitude\tI0\tJ0\tSigma\tFlux\tRed. chi2\tStatus\n")
			fmt.Fprintf(tw, "-------\t----------\t---------\t--\t--\t-----\t----\t---------\t------\n")
			params := make([]model.BrightnessParams, len(fits))
			ok := make([]bool, len(fits))
			failed := 0
			for _, f := range fits {
				if f.Err != nil {
					failed++
					a.log.Warn().Int("channel", f.Channel).Err(f.Err).Msg("channel fit failed")
					fmt.Fprintf(tw, "%d\t%.4f\t-\t-\t-\t-\t-\t-\terror: %v\n", f.Channel, axis.At(f.Channel), f.Err)
					continue
				}
				params[f.Channel], ok[f.Channel] = f.Params, true
				p := f.Params
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.3f\t%.3f\t%.3f\t%.4f\t%s\t%s\n",
					f.Channel, axis.At(f.Channel), p.Amplitude, p.I0, p.J0, p.Sigma,
					model.TotalFlux(p), formatFloat(f.Result.ReducedChiSquared), f.Result.Status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			a.log.Info().Int("fits", len(fits)).Int("failed", failed).Msg("channel fits done")

			if a.cfg.Plot != "" {
				return a.plotChannels(axis, c, g, params, ok)
			}
			return nil
		},
	}
}

// plotChannels writes the flux plot to --plot and the radial profile of the
// brightest fitted channel next to it.
func (a *app) plotChannels(axis cube.Axis, c *cube.Cube, g cube.Grid, params []model.BrightnessParams, ok []bool) error {
	if err := plotting.ChannelFlux(a.cfg.Plot, axis, params, ok); err != nil {
		return err
	}
	a.log.Info().Str("file", a.cfg.Plot).Msg("plot written")

	best := -1
	for k, p := range params {
		if ok[k] && (best < 0 || p.Amplitude > params[best].Amplitude) {
			best = k
		}
	}
	ext := filepath.Ext(a.cfg.Plot)
	path := strings.TrimSuffix(a.cfg.Plot, ext) + "-profile" + ext
	if err := plotting.Profile(path, g, c.Channel(best), params[best]); err != nil {
		return err
	}
	a.log.Info().Str("file", path).Int("channel", best).Msg("plot written")
	return nil
}

// parsePixel parses "i,j" and checks it lies inside a size x size image.
func parsePixel(s string, size int) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("pixel %q: want i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel %q: %w", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("pixel %q: %w", s, err)
	}
	if i < 0 || i >= size || j < 0 || j >= size {
		return 0, 0, fmt.Errorf("pixel %d,%d outside %dx%d image", i, j, size, size)
	}
	return i, j, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
