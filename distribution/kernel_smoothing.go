package distribution

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/kde"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/solver"
	"gonum.org/v1/gonum/mat"
)

const KernelSmoothingName = "KernelSmoothing"

// NewKernelSmoothing returns the Gaussian kernel smoothing of a weighted
// univariate sample. Empty weights mean equal weights, a zero bandwidth
// selects the normal reference rule and clip, when set, filters the
// sample first.
func NewKernelSmoothing(sample, weights []float64, bandwidth float64, clip *model.Clip,
	opts ...Option) (*Distribution, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	e, err := kde.New(sample, weights, bandwidth, clip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KernelSmoothingName, err)
	}
	return o.build(&kernelSmoothing{
		e:      e,
		solver: o.solver("kernel smoothing quantile"),
	}), nil
}

type kernelSmoothing struct {
	e      *kde.Estimator
	solver solver.Solver
}

func (k *kernelSmoothing) Name() string {
	return KernelSmoothingName
}

func (k *kernelSmoothing) Dimension() int {
	return 1
}

func (k *kernelSmoothing) PDF(x model.Point) float64 {
	return k.e.Density(x[0])
}

func (k *kernelSmoothing) LogPDF(x model.Point) float64 {
	return math.Log(k.PDF(x))
}

func (k *kernelSmoothing) DDF(x model.Point) model.Point {
	return model.Point{k.e.Derivative(x[0])}
}

func (k *kernelSmoothing) CDF(x model.Point) float64 {
	return k.e.CDF(x[0])
}

func (k *kernelSmoothing) Survival(x model.Point) float64 {
	return 1 - k.e.CDF(x[0])
}

func (k *kernelSmoothing) MarginalQuantile(_ int, p float64) (float64, error) {
	return k.e.Quantile(k.solver, p)
}

func (k *kernelSmoothing) Range() model.Interval {
	lo, hi := k.e.Bounds()
	return model.Interval{Lower: model.Point{lo}, Upper: model.Point{hi}}
}

func (k *kernelSmoothing) Realize(src RandomSource, n int) []model.Point {
	points := make([]model.Point, n)
	for i := range points {
		u := src.Float64()
		points[i] = model.Point{k.e.Draw(u, src.NormFloat64())}
	}
	return points
}

func (k *kernelSmoothing) Mean() model.Point {
	return model.Point{k.e.Mean()}
}

func (k *kernelSmoothing) Covariance() *mat.SymDense {
	return mat.NewSymDense(1, []float64{k.e.Variance()})
}

func (k *kernelSmoothing) Correlation() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(1)
}

func (k *kernelSmoothing) SpearmanCorrelation() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(1)
}

func (k *kernelSmoothing) KendallTau() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(1)
}

// Marginal of a univariate law can only be the law itself.
func (k *kernelSmoothing) Marginal(model.Indices) (Family, error) {
	return k, nil
}

func (k *kernelSmoothing) IsElliptical() bool         { return false }
func (k *kernelSmoothing) HasEllipticalCopula() bool  { return true }
func (k *kernelSmoothing) HasIndependentCopula() bool { return true }

// Parameters reports the retained (clipped) observations, so the clip is
// not needed to rebuild the estimator.
func (k *kernelSmoothing) Parameters() model.ParameterSet {
	return model.ParameterSet{
		Family:    KernelSmoothingName,
		Dimension: 1,
		Sample:    k.e.Points(),
		Weights:   k.e.Weights(),
		Bandwidth: k.e.Bandwidth(),
	}
}
