package distribution

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/mvn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const NormalCopulaName = "NormalCopula"

// NewNormalCopula returns the Gaussian copula with correlation matrix r:
// the law of (Φ(X_1), ..., Φ(X_d)) for X ~ N(0, r).
func NewNormalCopula(r *model.CorrelationMatrix, opts ...Option) (*Distribution, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	g, err := newGaussian(r, o.integrator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NormalCopulaName, err)
	}
	return o.build(&normalCopula{g}), nil
}

type normalCopula struct {
	g *gaussian
}

func (c *normalCopula) Name() string {
	return NormalCopulaName
}

func (c *normalCopula) Dimension() int {
	return c.g.dimension()
}

// normalScores maps u to z = Φ⁻¹(u). ok is false when u is outside the
// open unit cube.
func normalScores(u model.Point) ([]float64, bool) {
	z := make([]float64, len(u))
	for i, v := range u {
		if !(v > 0 && v < 1) {
			return nil, false
		}
		z[i] = mvn.PhiInv(v)
	}
	return z, true
}

func (c *normalCopula) LogPDF(u model.Point) float64 {
	z, ok := normalScores(u)
	if !ok {
		return math.Inf(-1)
	}
	q, _ := c.g.quadratic(z)
	return -0.5*(q-floats.Dot(z, z)) - 0.5*c.g.logDet
}

func (c *normalCopula) PDF(u model.Point) float64 {
	return math.Exp(c.LogPDF(u))
}

// DDF differentiates c(u) = exp(-½ zᵀ(R⁻¹-I)z)/√det R through z = Φ⁻¹(u).
func (c *normalCopula) DDF(u model.Point) model.Point {
	grad := make(model.Point, len(u))
	z, ok := normalScores(u)
	if !ok {
		return grad
	}
	q, rz := c.g.quadratic(z)
	pdf := math.Exp(-0.5*(q-floats.Dot(z, z)) - 0.5*c.g.logDet)
	for i := range grad {
		grad[i] = pdf * (z[i] - rz.AtVec(i)) / mvn.Density(z[i])
	}
	return grad
}

// clampedScores maps u to Φ⁻¹(u) after clamping to [0, 1], so that
// coordinates at or below 0 give -Inf and at or above 1 give +Inf.
func clampedScores(u model.Point, sign float64) []float64 {
	z := make([]float64, len(u))
	for i, v := range u {
		z[i] = sign * mvn.PhiInv(math.Max(0, math.Min(1, v)))
	}
	return z
}

func (c *normalCopula) CDF(u model.Point) float64 {
	return c.g.cdf(clampedScores(u, 1))
}

// Survival uses the radial symmetry of the normal copula:
// P(U > u) = P(Z > z) = Φ_R(-z).
func (c *normalCopula) Survival(u model.Point) float64 {
	return c.g.cdf(clampedScores(u, -1))
}

func (c *normalCopula) MarginalQuantile(_ int, p float64) (float64, error) {
	return p, nil
}

func (c *normalCopula) Range() model.Interval {
	return unitCube(c.Dimension())
}

func (c *normalCopula) Realize(src RandomSource, n int) []model.Point {
	x := c.g.draw(src, n)
	points := make([]model.Point, n)
	for k := range points {
		p := make(model.Point, c.Dimension())
		for i := range p {
			p[i] = mvn.Phi(x.At(k, i))
		}
		points[k] = p
	}
	return points
}

func (c *normalCopula) Mean() model.Point {
	return model.NewPoint(c.Dimension(), 0.5)
}

// Covariance of uniform margins: their Pearson correlation equals the
// Spearman correlation, and each variance is 1/12.
func (c *normalCopula) Covariance() *mat.SymDense {
	cov := c.g.spearman().SymDense()
	cov.ScaleSym(1.0/12, cov)
	return cov
}

func (c *normalCopula) Correlation() *model.CorrelationMatrix {
	return c.g.spearman()
}

func (c *normalCopula) SpearmanCorrelation() *model.CorrelationMatrix {
	return c.g.spearman()
}

func (c *normalCopula) KendallTau() *model.CorrelationMatrix {
	return c.g.kendall()
}

// Marginal keeps the sub-matrix: the normal copula family is closed under
// marginalization.
func (c *normalCopula) Marginal(indices model.Indices) (Family, error) {
	g, err := c.g.sub(indices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NormalCopulaName, err)
	}
	return &normalCopula{g}, nil
}

func (c *normalCopula) IsElliptical() bool {
	return false
}

func (c *normalCopula) HasEllipticalCopula() bool {
	return true
}

func (c *normalCopula) HasIndependentCopula() bool {
	return c.g.r.IsIdentity()
}

func (c *normalCopula) Parameters() model.ParameterSet {
	return model.ParameterSet{
		Family:      NormalCopulaName,
		Dimension:   c.Dimension(),
		Correlation: c.g.r.Rows(),
	}
}

func unitCube(d int) model.Interval {
	return model.Interval{Lower: model.NewPoint(d, 0), Upper: model.NewPoint(d, 1)}
}
