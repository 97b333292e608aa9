package fit

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-cubefit/errdefs"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Model evaluates a closed-form model at independent variables bound at
// construction. Len is the number of output samples.
type Model interface {
	NumParams() int
	Len() int
	Evaluate(dst, theta []float64) error
}

// Objective is a scalar cost of a parameter vector. Cost equals the sum of
// squared Residuals.
type Objective interface {
	NumParams() int
	NumPoints() int
	Cost(theta []float64) (float64, error)
	Residuals(dst, theta []float64) error
}

// scratchBuf holds pooled model and squared-residual buffers.
type scratchBuf struct {
	model []float64
	sq    []float64
}

func newScratchPool(n int) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			data := make([]float64, 2*n)
			return &scratchBuf{model: data[:n:n], sq: data[n:]}
		},
	}
}

// SumSquared is the unweighted objective J = sum (obs - model)^2.
type SumSquared struct {
	m        Model
	observed []float64
	scratch  *sync.Pool
}

// NewSumSquared binds m to a copy of observed.
func NewSumSquared(m Model, observed []float64) (*SumSquared, error) {
	if m == nil {
		return nil, errdefs.Configurationf("objective requires a model")
	}
	if len(observed) != m.Len() {
		return nil, errdefs.Shapef("observed length %d != model length %d", len(observed), m.Len())
	}
	return &SumSquared{
		m:        m,
		observed: append([]float64(nil), observed...),
		scratch:  newScratchPool(len(observed)),
	}, nil
}

// NumParams returns the model parameter count.
func (o *SumSquared) NumParams() int { return o.m.NumParams() }

// NumPoints returns the number of observations.
func (o *SumSquared) NumPoints() int { return len(o.observed) }

// Residuals writes obs - model(theta) into dst.
func (o *SumSquared) Residuals(dst, theta []float64) error {
	if len(dst) != len(o.observed) {
		return errdefs.Shapef("residual length %d != %d", len(dst), len(o.observed))
	}
	buf := o.scratch.Get().(*scratchBuf)
	defer o.scratch.Put(buf)
	if err := o.m.Evaluate(buf.model, theta); err != nil {
		return err
	}
	floats.SubTo(dst, o.observed, buf.model)
	return nil
}

// Cost returns the sum of squared residuals.
func (o *SumSquared) Cost(theta []float64) (float64, error) {
	buf := o.scratch.Get().(*scratchBuf)
	defer o.scratch.Put(buf)
	if err := o.m.Evaluate(buf.model, theta); err != nil {
		return 0, err
	}
	floats.SubTo(buf.model, o.observed, buf.model)
	vecmath.MulBlock(buf.sq, buf.model, buf.model)
	return floats.Sum(buf.sq), nil
}

// ChiSquared is the variance-weighted objective
// chi2 = sum (obs - model)^2 / variance.
type ChiSquared struct {
	m        Model
	observed []float64
	invVar   []float64
	weight   []float64 // 1/sqrt(variance)
	scratch  *sync.Pool
}

// NewChiSquared binds m to copies of observed and variance. variance holds
// either one entry per observation or a single entry applied to all of
// them. Every variance must be finite and > 0.
func NewChiSquared(m Model, observed, variance []float64) (*ChiSquared, error) {
	if m == nil {
		return nil, errdefs.Configurationf("objective requires a model")
	}
	n := len(observed)
	if n != m.Len() {
		return nil, errdefs.Shapef("observed length %d != model length %d", n, m.Len())
	}
	if len(variance) != n && len(variance) != 1 {
		return nil, errdefs.Shapef("variance length %d, want %d or 1", len(variance), n)
	}
	for k, v := range variance {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, errdefs.Domainf("variance at index %d must be finite and > 0: %v", k, v)
		}
	}

	invVar := make([]float64, n)
	weight := make([]float64, n)
	for k := range invVar {
		v := variance[0]
		if len(variance) == n {
			v = variance[k]
		}
		invVar[k] = 1 / v
		weight[k] = 1 / math.Sqrt(v)
	}
	return &ChiSquared{
		m:        m,
		observed: append([]float64(nil), observed...),
		invVar:   invVar,
		weight:   weight,
		scratch:  newScratchPool(n),
	}, nil
}

// NewChiSquaredScalar is NewChiSquared with one variance for all samples,
// as used for a single channel image.
func NewChiSquaredScalar(m Model, observed []float64, variance float64) (*ChiSquared, error) {
	return NewChiSquared(m, observed, []float64{variance})
}

// NumParams returns the model parameter count.
func (o *ChiSquared) NumParams() int { return o.m.NumParams() }

// NumPoints returns the number of observations.
func (o *ChiSquared) NumPoints() int { return len(o.observed) }

// Residuals writes (obs - model(theta)) / sigma into dst.
func (o *ChiSquared) Residuals(dst, theta []float64) error {
	if len(dst) != len(o.observed) {
		return errdefs.Shapef("residual length %d != %d", len(dst), len(o.observed))
	}
	buf := o.scratch.Get().(*scratchBuf)
	defer o.scratch.Put(buf)
	if err := o.m.Evaluate(buf.model, theta); err != nil {
		return err
	}
	floats.SubTo(dst, o.observed, buf.model)
	vecmath.MulBlockInPlace(dst, o.weight)
	return nil
}

// Cost returns chi-squared for theta.
func (o *ChiSquared) Cost(theta []float64) (float64, error) {
	buf := o.scratch.Get().(*scratchBuf)
	defer o.scratch.Put(buf)
	if err := o.m.Evaluate(buf.model, theta); err != nil {
		return 0, err
	}
	floats.SubTo(buf.model, o.observed, buf.model)
	vecmath.MulBlock(buf.sq, buf.model, buf.model)
	vecmath.MulBlockInPlace(buf.sq, o.invVar)
	return floats.Sum(buf.sq), nil
}

// ReducedChiSquared normalizes chi2 by the degrees of freedom
// nPoints - nParams, which must be positive.
func ReducedChiSquared(chi2 float64, nPoints, nParams int) (float64, error) {
	dof := nPoints - nParams
	if dof <= 0 {
		return math.NaN(), errdefs.Domainf("reduced chi-squared needs positive degrees of freedom: %d points, %d parameters", nPoints, nParams)
	}
	return chi2 / float64(dof), nil
}
