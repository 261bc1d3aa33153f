// Package correlation converts rank correlations to and from the linear
// correlation of a Gaussian dependence structure.
package correlation

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
)

// NormalCorrelationFromSpearman maps Spearman's rho to the linear
// correlation of a normal copula: 2 sin(π ρ_S / 6).
func NormalCorrelationFromSpearman(spearman *model.CorrelationMatrix) (*model.CorrelationMatrix, error) {
	return convert("spearman", spearman, func(v float64) float64 {
		return 2 * math.Sin(math.Pi*v/6)
	}, true)
}

// SpearmanFromNormalCorrelation is the inverse of
// NormalCorrelationFromSpearman: (6/π) asin(ρ/2).
func SpearmanFromNormalCorrelation(r *model.CorrelationMatrix) (*model.CorrelationMatrix, error) {
	return convert("normal correlation", r, SpearmanFromNormal, false)
}

// NormalCorrelationFromKendall maps Kendall's tau to the linear
// correlation of an elliptical copula: sin(π τ / 2).
func NormalCorrelationFromKendall(kendall *model.CorrelationMatrix) (*model.CorrelationMatrix, error) {
	return convert("kendall", kendall, func(v float64) float64 {
		return math.Sin(math.Pi * v / 2)
	}, true)
}

// KendallFromNormalCorrelation is (2/π) asin ρ.
func KendallFromNormalCorrelation(r *model.CorrelationMatrix) (*model.CorrelationMatrix, error) {
	return convert("normal correlation", r, KendallFromNormal, false)
}

// SpearmanFromNormal is the scalar Spearman's rho of a normal copula with
// correlation r.
func SpearmanFromNormal(r float64) float64 {
	return 6 / math.Pi * math.Asin(r/2)
}

// KendallFromNormal is the scalar Kendall's tau of a normal copula with
// correlation r.
func KendallFromNormal(r float64) float64 {
	return 2 / math.Pi * math.Asin(r)
}

func convert(what string, in *model.CorrelationMatrix, f func(float64) float64,
	checkPD bool) (*model.CorrelationMatrix, error) {
	if in == nil {
		return nil, fmt.Errorf("nil %s matrix: %w", what, common.ErrorInvalidParameter)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s matrix: %w", what, err)
	}

	d := in.Dimension()
	out := model.NewCorrelationMatrix(d)
	for i := 0; i < d; i++ {
		for j := 0; j < i; j++ {
			out.Set(i, j, f(in.At(i, j)))
		}
	}
	if checkPD && !out.IsPositiveDefinite() {
		return nil, fmt.Errorf("correlation converted from %s is not positive definite: %w",
			what, common.ErrorInvalidParameter)
	}
	return out, nil
}
