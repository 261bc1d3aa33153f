package distribution

import (
	"github.com/uyouii/copula-algorithms/model"
	"go.uber.org/zap"
)

// Quantile returns a point x with CDF(x) = p. In dimension d > 1 the
// solution is not unique; the returned point is the one whose marginal
// probabilities are all equal: x = (F_1⁻¹(q), ..., F_d⁻¹(q)). The common
// level q lies in the Fréchet bracket [p, (p+d-1)/d] and is found by
// Brent's method.
func (d *Distribution) Quantile(p float64) (model.Point, error) {
	if err := checkProbability("quantile", p); err != nil {
		return nil, err
	}
	x, err := d.equalAllocation("quantile", p,
		func(q float64) (model.Point, error) { return d.marginalQuantiles(q, false) },
		d.family.CDF)
	if err != nil {
		d.logger.Debug("quantile failed", zap.String("family", d.Name()),
			zap.Float64("p", p), zap.Error(err))
		return nil, err
	}
	return x, nil
}

// InverseSurvivalFunction returns a point x with SurvivalFunction(x) = p,
// with marginal survival probabilities all equal.
func (d *Distribution) InverseSurvivalFunction(p float64) (model.Point, error) {
	if err := checkProbability("inverse survival", p); err != nil {
		return nil, err
	}
	x, err := d.equalAllocation("inverse survival", p,
		func(q float64) (model.Point, error) { return d.marginalQuantiles(q, true) },
		d.family.Survival)
	if err != nil {
		d.logger.Debug("inverse survival failed", zap.String("family", d.Name()),
			zap.Float64("p", p), zap.Error(err))
		return nil, err
	}
	return x, nil
}

// marginalQuantiles returns (F_i⁻¹(q))_i, or (F_i⁻¹(1-q))_i when tail is
// set.
func (d *Distribution) marginalQuantiles(q float64, tail bool) (model.Point, error) {
	if tail {
		q = 1 - q
	}
	x := make(model.Point, d.Dimension())
	for i := range x {
		v, err := d.marginalQuantile(i, q)
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	return x, nil
}

// marginalQuantile extends the family quantile to the closed unit interval
// with the range bounds.
func (d *Distribution) marginalQuantile(i int, q float64) (float64, error) {
	switch {
	case q <= 0:
		return d.family.Range().Lower[i], nil
	case q >= 1:
		return d.family.Range().Upper[i], nil
	}
	return d.family.MarginalQuantile(i, q)
}

// equalAllocation solves prob(point(q)) = p for q, where prob is
// nondecreasing in q and every marginal of point(q) carries probability q.
func (d *Distribution) equalAllocation(operation string, p float64,
	point func(q float64) (model.Point, error), prob func(model.Point) float64) (model.Point, error) {
	n := float64(d.Dimension())
	if n == 1 {
		return point(p)
	}

	var failure error
	f := func(q float64) float64 {
		x, err := point(q)
		if err != nil {
			if failure == nil {
				failure = err
			}
			return 0
		}
		return prob(x) - p
	}
	q, err := d.solver(operation).FindRoot(f, p, (p+n-1)/n)
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, err
	}
	return point(q)
}
