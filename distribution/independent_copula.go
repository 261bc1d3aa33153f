package distribution

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"gonum.org/v1/gonum/mat"
)

const IndependentCopulaName = "IndependentCopula"

// NewIndependentCopula returns the copula of d independent components, the
// uniform law on the unit cube.
func NewIndependentCopula(d int, opts ...Option) (*Distribution, error) {
	if d < 1 {
		return nil, fmt.Errorf("%s of dimension %d: %w", IndependentCopulaName, d, common.ErrorInvalidParameter)
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return o.build(independentCopula{d: d}), nil
}

type independentCopula struct {
	d int
}

func (c independentCopula) Name() string   { return IndependentCopulaName }
func (c independentCopula) Dimension() int { return c.d }

func inUnitCube(u model.Point) bool {
	for _, v := range u {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

func (c independentCopula) PDF(u model.Point) float64 {
	if !inUnitCube(u) {
		return 0
	}
	return 1
}

func (c independentCopula) LogPDF(u model.Point) float64 {
	return math.Log(c.PDF(u))
}

// DDF is zero everywhere the density is differentiable.
func (c independentCopula) DDF(u model.Point) model.Point {
	return make(model.Point, len(u))
}

func (c independentCopula) CDF(u model.Point) float64 {
	prod := 1.0
	for _, v := range u {
		prod *= math.Max(0, math.Min(1, v))
	}
	return prod
}

func (c independentCopula) Survival(u model.Point) float64 {
	prod := 1.0
	for _, v := range u {
		prod *= 1 - math.Max(0, math.Min(1, v))
	}
	return prod
}

func (c independentCopula) MarginalQuantile(_ int, p float64) (float64, error) {
	return p, nil
}

func (c independentCopula) Range() model.Interval {
	return unitCube(c.d)
}

func (c independentCopula) Realize(src RandomSource, n int) []model.Point {
	points := make([]model.Point, n)
	for k := range points {
		p := make(model.Point, c.d)
		for i := range p {
			p[i] = src.Float64()
		}
		points[k] = p
	}
	return points
}

func (c independentCopula) Mean() model.Point {
	return model.NewPoint(c.d, 0.5)
}

func (c independentCopula) Covariance() *mat.SymDense {
	cov := mat.NewSymDense(c.d, nil)
	for i := 0; i < c.d; i++ {
		cov.SetSym(i, i, 1.0/12)
	}
	return cov
}

func (c independentCopula) Correlation() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(c.d)
}

func (c independentCopula) SpearmanCorrelation() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(c.d)
}

func (c independentCopula) KendallTau() *model.CorrelationMatrix {
	return model.NewCorrelationMatrix(c.d)
}

func (c independentCopula) Marginal(indices model.Indices) (Family, error) {
	return independentCopula{d: len(indices)}, nil
}

func (c independentCopula) IsElliptical() bool         { return false }
func (c independentCopula) HasEllipticalCopula() bool  { return true }
func (c independentCopula) HasIndependentCopula() bool { return true }

func (c independentCopula) Parameters() model.ParameterSet {
	return model.ParameterSet{Family: IndependentCopulaName, Dimension: c.d}
}
