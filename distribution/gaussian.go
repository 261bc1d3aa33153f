package distribution

import (
	"fmt"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/correlation"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/mvn"
	"gonum.org/v1/gonum/mat"
)

// gaussian holds what the normal copula and the multivariate normal share:
// the correlation matrix, its inverse and log-determinant, the Cholesky
// factor used for sampling and the integrator for Φ_R.
type gaussian struct {
	r          *model.CorrelationMatrix
	sym        *mat.SymDense
	inverse    *mat.SymDense
	logDet     float64
	lower      *mat.TriDense
	integrator mvn.Integrator
}

func newGaussian(r *model.CorrelationMatrix, integrator mvn.Integrator) (*gaussian, error) {
	if r == nil {
		return nil, fmt.Errorf("nil correlation matrix: %w", common.ErrorInvalidParameter)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	sym := r.SymDense()
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return nil, fmt.Errorf("correlation matrix %v is not positive definite: %w",
			r, common.ErrorInvalidParameter)
	}
	inverse := mat.NewSymDense(r.Dimension(), nil)
	if err := chol.InverseTo(inverse); err != nil {
		return nil, fmt.Errorf("correlation matrix %v: %v: %w", r, err, common.ErrorInvalidParameter)
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	return &gaussian{
		r:          r.Clone(),
		sym:        sym,
		inverse:    inverse,
		logDet:     chol.LogDet(),
		lower:      &lower,
		integrator: integrator,
	}, nil
}

func (g *gaussian) dimension() int {
	return g.r.Dimension()
}

// quadratic returns zᵀR⁻¹z and R⁻¹z.
func (g *gaussian) quadratic(z []float64) (float64, *mat.VecDense) {
	zv := mat.NewVecDense(len(z), append([]float64(nil), z...))
	var rz mat.VecDense
	rz.MulVec(g.inverse, zv)
	return mat.Dot(zv, &rz), &rz
}

// cdf is Φ_R(z).
func (g *gaussian) cdf(z []float64) float64 {
	return g.integrator.CDF(z, g.sym)
}

// draw returns n rows of correlated standard normal vectors. The normals
// are consumed point by point so that a sample of n is the same as n
// single draws.
func (g *gaussian) draw(src RandomSource, n int) *mat.Dense {
	d := g.dimension()
	if n == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, n*d)
	for i := range data {
		data[i] = src.NormFloat64()
	}
	z := mat.NewDense(n, d, data)
	var x mat.Dense
	x.Mul(z, g.lower.T())
	return &x
}

func (g *gaussian) sub(indices model.Indices) (*gaussian, error) {
	return newGaussian(g.r.Sub(indices), g.integrator)
}

func (g *gaussian) spearman() *model.CorrelationMatrix {
	return g.transform(correlation.SpearmanFromNormal)
}

func (g *gaussian) kendall() *model.CorrelationMatrix {
	return g.transform(correlation.KendallFromNormal)
}

func (g *gaussian) transform(f func(float64) float64) *model.CorrelationMatrix {
	d := g.dimension()
	out := model.NewCorrelationMatrix(d)
	for i := 0; i < d; i++ {
		for j := 0; j < i; j++ {
			out.Set(i, j, f(g.r.At(i, j)))
		}
	}
	return out
}
