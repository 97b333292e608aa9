package analysis

import (
	"runtime"
	"sort"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/errdefs"
	"github.com/cwbudde/algo-cubefit/fit"
	"github.com/cwbudde/algo-cubefit/model"
	"github.com/sourcegraph/conc/pool"
)

// ChannelConfig controls FitChannels.
type ChannelConfig struct {
	// Workers bounds the number of concurrent fits; <= 0 uses GOMAXPROCS.
	Workers int
	// Fit configures the per-channel Fitter.
	Fit []fit.Option
}

// ChannelFit is the brightness fit of one channel. Err is set when that
// channel could not be fitted; the other fields are then zero.
type ChannelFit struct {
	Channel int
	Guess   model.BrightnessParams
	Params  model.BrightnessParams
	Result  fit.Result
	Err     error
}

// FitChannels fits the brightness model to every channel of c in parallel.
// variances is empty or holds one noise variance per channel, in which
// case each fit is chi-squared. Results are ordered by channel. Shape
// mismatches are returned as an error; failures of single channels are
// recorded in their ChannelFit.
func FitChannels(c *cube.Cube, g cube.Grid, variances []float64, cfg ChannelConfig) ([]ChannelFit, error) {
	if c == nil {
		return nil, errdefs.Shapef("channel fit requires a cube")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	nk, ni, nj := c.Shape()
	gi, gj := g.Dims()
	if gi != ni || gj != nj {
		return nil, errdefs.Shapef("grid is %dx%d, cube channels are %dx%d", gi, gj, ni, nj)
	}
	if len(variances) != 0 && len(variances) != nk {
		return nil, errdefs.Shapef("got %d variances for %d channels", len(variances), nk)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m, err := model.NewBrightnessModel(g)
	if err != nil {
		return nil, err
	}
	fitter := fit.New(cfg.Fit...)
	bounds := []fit.Bound{
		fit.Unbounded(),
		fit.Between(-0.5, float64(ni)-0.5),
		fit.Between(-0.5, float64(nj)-0.5),
		fit.Positive(),
	}

	p := pool.NewWithResults[ChannelFit]().WithMaxGoroutines(workers)
	for k := 0; k < nk; k++ {
		p.Go(func() ChannelFit {
			out := ChannelFit{Channel: k}
			out.Guess, out.Params, out.Result, out.Err = fitChannel(fitter, m, g, c, k, variances, bounds)
			return out
		})
	}
	fits := p.Wait()
	sort.Slice(fits, func(a, b int) bool { return fits[a].Channel < fits[b].Channel })
	return fits, nil
}

func fitChannel(
	fitter *fit.Fitter,
	m *model.BrightnessModel,
	g cube.Grid,
	c *cube.Cube,
	k int,
	variances []float64,
	bounds []fit.Bound,
) (model.BrightnessParams, model.BrightnessParams, fit.Result, error) {
	guess, err := GuessBrightness(g, c.Channel(k))
	if err != nil {
		return model.BrightnessParams{}, model.BrightnessParams{}, fit.Result{}, err
	}

	data := c.ChannelData(k)
	var obj fit.Objective
	if len(variances) != 0 {
		obj, err = fit.NewChiSquaredScalar(m, data, variances[k])
	} else {
		obj, err = fit.NewSumSquared(m, data)
	}
	if err != nil {
		return guess, model.BrightnessParams{}, fit.Result{}, err
	}

	res, err := fitter.Fit(obj, guess.Vector(), bounds...)
	if err != nil {
		return guess, model.BrightnessParams{}, fit.Result{}, err
	}
	params, err := model.BrightnessParamsFrom(res.Params)
	return guess, params, res, err
}
