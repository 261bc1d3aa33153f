package distribution

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/mvn"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const NormalName = "Normal"

// NewNormal returns the multivariate normal law with the given means,
// standard deviations and correlation matrix. A nil r means independent
// components.
func NewNormal(mean, sigma []float64, r *model.CorrelationMatrix, opts ...Option) (*Distribution, error) {
	if len(mean) == 0 || len(mean) != len(sigma) {
		return nil, fmt.Errorf("%s: %d means for %d standard deviations: %w",
			NormalName, len(mean), len(sigma), common.ErrorInvalidParameter)
	}
	for i := range mean {
		if math.IsNaN(mean[i]) || math.IsInf(mean[i], 0) {
			return nil, fmt.Errorf("%s: mean %v: %w", NormalName, mean[i], common.ErrorInvalidParameter)
		}
		if !(sigma[i] > 0) || math.IsInf(sigma[i], 1) {
			return nil, fmt.Errorf("%s: standard deviation %v: %w", NormalName, sigma[i], common.ErrorInvalidParameter)
		}
	}
	if r == nil {
		r = model.NewCorrelationMatrix(len(mean))
	}
	if r.Dimension() != len(mean) {
		return nil, fmt.Errorf("%s: correlation of dimension %d for %d means: %w",
			NormalName, r.Dimension(), len(mean), common.ErrorInvalidParameter)
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	g, err := newGaussian(r, o.integrator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NormalName, err)
	}
	return o.build(&normal{
		mean:  append([]float64(nil), mean...),
		sigma: append([]float64(nil), sigma...),
		g:     g,
	}), nil
}

type normal struct {
	mean  []float64
	sigma []float64
	g     *gaussian
}

func (n *normal) Name() string {
	return NormalName
}

func (n *normal) Dimension() int {
	return len(n.mean)
}

func (n *normal) standardize(x model.Point, sign float64) []float64 {
	z := make([]float64, len(x))
	for i, v := range x {
		z[i] = sign * (v - n.mean[i]) / n.sigma[i]
	}
	return z
}

// logNormalization is log((2π)^{d/2} Π σ_i √det R).
func (n *normal) logNormalization() float64 {
	s := 0.5*float64(n.Dimension())*math.Log(2*math.Pi) + 0.5*n.g.logDet
	for _, v := range n.sigma {
		s += math.Log(v)
	}
	return s
}

func (n *normal) LogPDF(x model.Point) float64 {
	q, _ := n.g.quadratic(n.standardize(x, 1))
	return -0.5*q - n.logNormalization()
}

func (n *normal) PDF(x model.Point) float64 {
	return math.Exp(n.LogPDF(x))
}

// DDF is -f(x) Σ⁻¹(x - μ).
func (n *normal) DDF(x model.Point) model.Point {
	q, rz := n.g.quadratic(n.standardize(x, 1))
	pdf := math.Exp(-0.5*q - n.logNormalization())
	grad := make(model.Point, len(x))
	for i := range grad {
		grad[i] = -pdf * rz.AtVec(i) / n.sigma[i]
	}
	return grad
}

func (n *normal) CDF(x model.Point) float64 {
	return n.g.cdf(n.standardize(x, 1))
}

func (n *normal) Survival(x model.Point) float64 {
	return n.g.cdf(n.standardize(x, -1))
}

func (n *normal) MarginalQuantile(i int, p float64) (float64, error) {
	return n.mean[i] + n.sigma[i]*mvn.PhiInv(p), nil
}

func (n *normal) Range() model.Interval {
	d := n.Dimension()
	return model.Interval{Lower: model.NewPoint(d, math.Inf(-1)), Upper: model.NewPoint(d, math.Inf(1))}
}

func (n *normal) Realize(src RandomSource, count int) []model.Point {
	x := n.g.draw(src, count)
	points := make([]model.Point, count)
	for k := range points {
		p := make(model.Point, n.Dimension())
		for i := range p {
			p[i] = n.mean[i] + n.sigma[i]*x.At(k, i)
		}
		points[k] = p
	}
	return points
}

func (n *normal) Mean() model.Point {
	return append(model.Point(nil), n.mean...)
}

func (n *normal) Covariance() *mat.SymDense {
	d := n.Dimension()
	cov := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			cov.SetSym(i, j, n.sigma[i]*n.sigma[j]*n.g.r.At(i, j))
		}
	}
	return cov
}

func (n *normal) Correlation() *model.CorrelationMatrix {
	return n.g.r.Clone()
}

func (n *normal) SpearmanCorrelation() *model.CorrelationMatrix {
	return n.g.spearman()
}

func (n *normal) KendallTau() *model.CorrelationMatrix {
	return n.g.kendall()
}

func (n *normal) Marginal(indices model.Indices) (Family, error) {
	g, err := n.g.sub(indices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NormalName, err)
	}
	return &normal{
		mean:  indices.Select(n.mean),
		sigma: indices.Select(n.sigma),
		g:     g,
	}, nil
}

func (n *normal) IsElliptical() bool {
	return true
}

func (n *normal) HasEllipticalCopula() bool {
	return true
}

func (n *normal) HasIndependentCopula() bool {
	return n.g.r.IsIdentity()
}

// MinimumVolumeLevelSet is the ellipsoid {(x-μ)ᵀΣ⁻¹(x-μ) <= χ²_d(p)}; its
// probability is exactly p.
func (n *normal) MinimumVolumeLevelSet(p float64) LevelSetResult {
	radius := distuv.ChiSquared{K: float64(n.Dimension())}.Quantile(p)
	threshold := math.Exp(-0.5*radius - n.logNormalization())
	return LevelSetResult{
		LevelSet: model.LevelSet{
			Dimension: n.Dimension(),
			Function:  n.PDF,
			Threshold: threshold,
		},
		Threshold: threshold,
		Coverage:  p,
	}
}

func (n *normal) Parameters() model.ParameterSet {
	return model.ParameterSet{
		Family:      NormalName,
		Dimension:   n.Dimension(),
		Mean:        n.Mean(),
		Sigma:       append([]float64(nil), n.sigma...),
		Correlation: n.g.r.Rows(),
	}
}
