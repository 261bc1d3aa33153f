package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Confidence regions are only built up to this dimension.
const MaxRegionDimension = 2

type Tail int

const (
	// LowerTail selects the interval (-inf, x].
	LowerTail Tail = iota
	// UpperTail selects the interval [x, +inf).
	UpperTail
)

func (t Tail) String() string {
	if t == UpperTail {
		return "upper"
	}
	return "lower"
}

// IntervalResult is a box region together with the probability carried by
// each of its marginal intervals and the probability of the whole box.
type IntervalResult struct {
	Interval            model.Interval
	MarginalProbability float64
	Coverage            float64
}

// LevelSetResult is the region {x : PDF(x) >= Threshold} and its
// probability.
type LevelSetResult struct {
	LevelSet  model.LevelSet
	Threshold float64
	Coverage  float64
}

func (d *Distribution) checkRegion(operation string, p float64) error {
	if d.Dimension() > MaxRegionDimension {
		return fmt.Errorf("%s in dimension %d: %w", operation, d.Dimension(), common.ErrorUnsupportedOperation)
	}
	return checkProbability(operation, p)
}

// MinimumVolumeInterval returns the box of probability p built from the
// shortest marginal intervals of a common marginal probability.
func (d *Distribution) MinimumVolumeInterval(p float64) (IntervalResult, error) {
	const op = "minimum volume interval"
	if err := d.checkRegion(op, p); err != nil {
		return IntervalResult{}, err
	}
	return d.intervalWithMarginalProbability(op, p, func(beta float64) (model.Interval, error) {
		n := d.Dimension()
		lower, upper := make(model.Point, n), make(model.Point, n)
		for i := 0; i < n; i++ {
			lo, hi, err := d.shortestMarginalInterval(i, beta)
			if err != nil {
				return model.Interval{}, err
			}
			lower[i], upper[i] = lo, hi
		}
		return model.Interval{Lower: lower, Upper: upper}, nil
	})
}

// BilateralConfidenceInterval returns the box of probability p whose
// marginal intervals leave equal probability in both tails.
func (d *Distribution) BilateralConfidenceInterval(p float64) (IntervalResult, error) {
	const op = "bilateral confidence interval"
	if err := d.checkRegion(op, p); err != nil {
		return IntervalResult{}, err
	}
	return d.intervalWithMarginalProbability(op, p, func(beta float64) (model.Interval, error) {
		lower, err := d.marginalQuantiles((1-beta)/2, false)
		if err != nil {
			return model.Interval{}, err
		}
		upper, err := d.marginalQuantiles((1+beta)/2, false)
		if err != nil {
			return model.Interval{}, err
		}
		return model.Interval{Lower: lower, Upper: upper}, nil
	})
}

// UnilateralConfidenceInterval returns the one-sided box of probability p
// extending to the range bound on the side of tail.
func (d *Distribution) UnilateralConfidenceInterval(p float64, tail Tail) (IntervalResult, error) {
	op := tail.String() + " unilateral confidence interval"
	if err := d.checkRegion(op, p); err != nil {
		return IntervalResult{}, err
	}
	bounds := d.family.Range()
	return d.intervalWithMarginalProbability(op, p, func(beta float64) (model.Interval, error) {
		if tail == UpperTail {
			lower, err := d.marginalQuantiles(beta, true)
			if err != nil {
				return model.Interval{}, err
			}
			return model.Interval{Lower: lower, Upper: bounds.Upper.Clone()}, nil
		}
		upper, err := d.marginalQuantiles(beta, false)
		if err != nil {
			return model.Interval{}, err
		}
		return model.Interval{Lower: bounds.Lower.Clone(), Upper: upper}, nil
	})
}

// intervalWithMarginalProbability finds the marginal probability beta for
// which box(beta) has probability p.
func (d *Distribution) intervalWithMarginalProbability(operation string, p float64,
	box func(beta float64) (model.Interval, error)) (IntervalResult, error) {
	n := float64(d.Dimension())
	beta := p
	if n > 1 {
		var failure error
		f := func(beta float64) float64 {
			in, err := box(beta)
			if err != nil {
				if failure == nil {
					failure = err
				}
				return 0
			}
			return d.boxProbability(in) - p
		}
		var err error
		beta, err = d.solver(operation).FindRoot(f, p, (p+n-1)/n)
		if failure != nil {
			err = failure
		}
		if err != nil {
			d.logger.Debug("confidence interval failed", zap.String("operation", operation),
				zap.String("family", d.Name()), zap.Float64("p", p), zap.Error(err))
			return IntervalResult{}, err
		}
	}

	in, err := box(beta)
	if err != nil {
		return IntervalResult{}, err
	}
	return IntervalResult{
		Interval:            in,
		MarginalProbability: beta,
		Coverage:            d.boxProbability(in),
	}, nil
}

// shortestMarginalInterval minimises F_i⁻¹(a+beta) - F_i⁻¹(a) over a. When
// the centred interval is as short as the minimiser, it is preferred, so
// that flat densities give symmetric intervals.
func (d *Distribution) shortestMarginalInterval(i int, beta float64) (float64, float64, error) {
	var failure error
	width := func(a float64) float64 {
		lo, err := d.marginalQuantile(i, a)
		if err != nil {
			failure = err
			return math.Inf(1)
		}
		hi, err := d.marginalQuantile(i, a+beta)
		if err != nil {
			failure = err
			return math.Inf(1)
		}
		return hi - lo
	}

	centre := (1 - beta) / 2
	best := centre
	if a, w, err := d.solver("shortest marginal interval").Minimize(width, 0, 1-beta); err != nil {
		return 0, 0, err
	} else if w < width(centre)-1e-12*math.Max(1, math.Abs(w)) {
		best = a
	}
	if failure != nil {
		return 0, 0, failure
	}

	lo, err := d.marginalQuantile(i, best)
	if err != nil {
		return 0, 0, err
	}
	hi, err := d.marginalQuantile(i, best+beta)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// MinimumVolumeLevelSet returns the density level set of probability p.
// Families without a closed form get a Monte Carlo estimate: the threshold
// is the empirical (1-p)-quantile of the density over a seeded sample, so
// the achieved coverage may differ slightly from p.
func (d *Distribution) MinimumVolumeLevelSet(p float64) (LevelSetResult, error) {
	const op = "minimum volume level set"
	if err := d.checkRegion(op, p); err != nil {
		return LevelSetResult{}, err
	}
	if e, ok := d.family.(exactLevelSet); ok {
		return e.MinimumVolumeLevelSet(p), nil
	}

	src := rand.New(rand.NewSource(d.settings.LevelSet.Seed))
	points := d.family.Realize(src, d.settings.LevelSet.SamplingSize)
	densities := make([]float64, len(points))
	for i, x := range points {
		densities[i] = d.family.PDF(x)
	}
	sort.Float64s(densities)
	threshold := stat.Quantile(1-p, stat.Empirical, densities, nil)
	inside := len(densities) - sort.SearchFloat64s(densities, threshold)

	return LevelSetResult{
		LevelSet:  d.levelSet(threshold),
		Threshold: threshold,
		Coverage:  float64(inside) / float64(len(densities)),
	}, nil
}

func (d *Distribution) levelSet(threshold float64) model.LevelSet {
	return model.LevelSet{
		Dimension: d.Dimension(),
		Function:  d.family.PDF,
		Threshold: threshold,
	}
}
