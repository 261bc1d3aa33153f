// Package mvn evaluates the standard multivariate normal distribution
// function Φ_R(h) = P(X_1 <= h_1, ..., X_d <= h_d) for X ~ N(0, R) with R a
// correlation matrix.
package mvn

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Phi is the standard normal CDF.
func Phi(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// PhiInv is the standard normal quantile. It returns -Inf for p <= 0 and
// +Inf for p >= 1 instead of panicking.
func PhiInv(p float64) float64 {
	switch {
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	}
	return distuv.UnitNormal.Quantile(p)
}

// Density is the standard normal density.
func Density(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
