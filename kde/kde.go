// Package kde implements a univariate Gaussian kernel smoothing estimator.
package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/solver"
	"gonum.org/v1/gonum/floats"
)

// Estimator is the smoothed law of a weighted univariate sample. It is
// immutable once built.
type Estimator struct {
	// sorted ascending, weights aligned and summing to one
	points  []float64
	weights []float64

	bandwidth float64
	gridSize  int
	kernel    *GaussianKernel
	cumWeight []float64
}

// New fits an estimator to sample. Empty weights mean equal weights; a zero
// bandwidth selects the normal reference rule. Clip, when set, drops the
// observations outside its bounds before anything else.
func New(sample []float64, weights []float64, bandwidth float64, clip *model.Clip) (*Estimator, error) {
	if len(weights) == 0 {
		weights = InitOnes(len(sample))
	} else if len(weights) != len(sample) {
		return nil, fmt.Errorf("%d weights for %d observations: %w",
			len(weights), len(sample), common.ErrorInvalidParameter)
	}

	x, w := Clip(append([]float64(nil), sample...), append([]float64(nil), weights...), clip)
	if len(x) == 0 {
		return nil, fmt.Errorf("no observation to smooth: %w", common.ErrorInvalidParameter)
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, fmt.Errorf("observation %v: %w", x[i], common.ErrorInvalidParameter)
		}
		if !(w[i] >= 0) || math.IsInf(w[i], 1) {
			return nil, fmt.Errorf("weight %v: %w", w[i], common.ErrorInvalidParameter)
		}
	}
	total := floats.Sum(w)
	if total <= 0 {
		return nil, fmt.Errorf("weights sum to %v: %w", total, common.ErrorInvalidParameter)
	}
	floats.Scale(1/total, w)
	sortTogether(x, w)

	kernel := NewGaussianKernel()
	if bandwidth == 0 {
		bandwidth = NewNormalReferenceBandWidth(kernel).BandWidth(x)
	}
	if !(bandwidth > 0) || math.IsInf(bandwidth, 1) {
		return nil, fmt.Errorf("bandwidth %v: %w", bandwidth, common.ErrorInvalidParameter)
	}
	kernel.SetH(bandwidth)
	kernel.SetWeights(w)

	cum := make([]float64, len(w))
	floats.CumSum(cum, w)

	return &Estimator{
		points:    x,
		weights:   w,
		bandwidth: bandwidth,
		gridSize:  max(len(x), MinGridSize),
		kernel:    kernel,
		cumWeight: cum,
	}, nil
}

// Points returns a copy of the retained observations, sorted.
func (e *Estimator) Points() []float64 {
	return append([]float64(nil), e.points...)
}

// Weights returns a copy of the normalised weights aligned with Points.
func (e *Estimator) Weights() []float64 {
	return append([]float64(nil), e.weights...)
}

func (e *Estimator) Bandwidth() float64 {
	return e.bandwidth
}

func (e *Estimator) Density(x float64) float64 {
	return e.kernel.Density(e.points, x)
}

func (e *Estimator) CDF(x float64) float64 {
	switch {
	case math.IsInf(x, -1):
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return math.Max(0, math.Min(1, e.kernel.CDF(e.points, x)))
}

// Derivative is the derivative of Density.
func (e *Estimator) Derivative(x float64) float64 {
	return e.kernel.Derivative(e.points, x)
}

func (e *Estimator) Mean() float64 {
	return floats.Dot(e.points, e.weights)
}

// Variance is the weighted sample variance plus the kernel variance.
func (e *Estimator) Variance() float64 {
	m := e.Mean()
	v := 0.0
	for i, x := range e.points {
		v += e.weights[i] * (x - m) * (x - m)
	}
	return v + e.kernel.Moments(2)*e.bandwidth*e.bandwidth
}

// Bounds is a range holding all but a negligible part of the mass.
func (e *Estimator) Bounds() (float64, float64) {
	cut := BoundsCut * e.bandwidth
	return e.points[0] - cut, e.points[len(e.points)-1] + cut
}

// Quantile inverts the CDF. A coarse grid over Bounds locates the cell
// holding p and s refines it.
func (e *Estimator) Quantile(s solver.Solver, p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("kde quantile level %v: %w", p, common.ErrorInvalidArgument)
	}
	lo, hi := e.Bounds()
	width := hi - lo
	for i := 0; e.CDF(lo) > p; i++ {
		if i == 64 {
			return 0, fmt.Errorf("kde quantile lower bracket for %v: %w", p, common.ErrorConvergenceFailure)
		}
		lo -= width
		width *= 2
	}
	width = hi - lo
	for i := 0; e.CDF(hi) < p; i++ {
		if i == 64 {
			return 0, fmt.Errorf("kde quantile upper bracket for %v: %w", p, common.ErrorConvergenceFailure)
		}
		hi += width
		width *= 2
	}

	grid := linspace(lo, hi, e.gridSize)
	i := sort.Search(len(grid), func(i int) bool { return e.CDF(grid[i]) >= p })
	switch {
	case i == 0:
		return grid[0], nil
	case i == len(grid):
		return grid[len(grid)-1], nil
	}
	return s.FindRoot(func(x float64) float64 { return e.CDF(x) - p }, grid[i-1], grid[i])
}

// Draw returns a realization given a uniform and a standard normal draw.
func (e *Estimator) Draw(u, z float64) float64 {
	i := sort.SearchFloat64s(e.cumWeight, u)
	if i >= len(e.points) {
		i = len(e.points) - 1
	}
	return e.points[i] + e.bandwidth*z
}
