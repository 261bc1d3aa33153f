package distribution

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// PDF is the density at x, 0 outside the support.
func (d *Distribution) PDF(x model.Point) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	return d.family.PDF(x), nil
}

func (d *Distribution) LogPDF(x model.Point) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	return d.family.LogPDF(x), nil
}

// CDF is P(X <= x) componentwise.
func (d *Distribution) CDF(x model.Point) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	return d.family.CDF(x), nil
}

// SurvivalFunction is P(X > x) componentwise.
func (d *Distribution) SurvivalFunction(x model.Point) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	return d.family.Survival(x), nil
}

// DDF is the gradient of the density. Families without an analytic
// gradient fall back to FiniteDifferenceDDF.
func (d *Distribution) DDF(x model.Point) (model.Point, error) {
	if err := d.checkPoint(x); err != nil {
		return nil, err
	}
	if g, ok := d.family.(gradient); ok {
		return g.DDF(x), nil
	}
	return d.finiteDifferenceDDF(x), nil
}

// FiniteDifferenceDDF approximates the density gradient with central
// differences.
func (d *Distribution) FiniteDifferenceDDF(x model.Point) (model.Point, error) {
	if err := d.checkPoint(x); err != nil {
		return nil, err
	}
	return d.finiteDifferenceDDF(x), nil
}

func (d *Distribution) finiteDifferenceDDF(x model.Point) model.Point {
	f := func(y []float64) float64 {
		return d.family.PDF(y)
	}
	return fd.Gradient(nil, f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    d.settings.FiniteDifference.Step,
	})
}

// ComputeProbability is P(X ∈ interval), by inclusion-exclusion over the
// 2^d corners of the box.
func (d *Distribution) ComputeProbability(interval model.Interval) (float64, error) {
	if interval.Dimension() != d.Dimension() {
		return 0, fmt.Errorf("%s: interval of dimension %d, want %d: %w",
			d.Name(), interval.Dimension(), d.Dimension(), common.ErrorDimensionMismatch)
	}
	if err := d.checkPoint(interval.Lower); err != nil {
		return 0, err
	}
	if err := d.checkPoint(interval.Upper); err != nil {
		return 0, err
	}
	if interval.IsEmpty() {
		return 0, nil
	}
	return d.boxProbability(interval), nil
}

func (d *Distribution) boxProbability(interval model.Interval) float64 {
	n := d.Dimension()
	corner := make(model.Point, n)
	sum := 0.0
	for mask := 0; mask < 1<<n; mask++ {
		sign := 1.0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				corner[i] = interval.Lower[i]
				sign = -sign
			} else {
				corner[i] = interval.Upper[i]
			}
		}
		if containsInf(corner, -1) {
			continue
		}
		sum += sign * d.family.CDF(corner)
	}
	return math.Max(0, math.Min(1, sum))
}

func containsInf(x model.Point, sign int) bool {
	for _, v := range x {
		if math.IsInf(v, sign) {
			return true
		}
	}
	return false
}

func (d *Distribution) Mean() model.Point {
	return d.family.Mean()
}

func (d *Distribution) Covariance() *mat.SymDense {
	return d.family.Covariance()
}

// Correlation is the linear (Pearson) correlation of the components.
func (d *Distribution) Correlation() *model.CorrelationMatrix {
	return d.family.Correlation()
}

func (d *Distribution) SpearmanCorrelation() *model.CorrelationMatrix {
	return d.family.SpearmanCorrelation()
}

func (d *Distribution) KendallTau() *model.CorrelationMatrix {
	return d.family.KendallTau()
}
