// Package distribution evaluates multivariate distributions and copulas:
// densities, distribution functions, quantiles, marginals, sampling and
// confidence regions over a small set of families sharing one engine.
package distribution

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/config"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/mvn"
	"github.com/uyouii/copula-algorithms/solver"
	"github.com/uyouii/copula-algorithms/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Family holds the closed-form formulas of one distribution family. Points
// handed to a Family have already been checked against its dimension.
type Family interface {
	Name() string
	Dimension() int

	PDF(x model.Point) float64
	LogPDF(x model.Point) float64
	CDF(x model.Point) float64
	Survival(x model.Point) float64

	MarginalQuantile(i int, p float64) (float64, error)

	// Range is the smallest box holding the support.
	Range() model.Interval

	// Realize draws n points in one batch.
	Realize(src RandomSource, n int) []model.Point

	Mean() model.Point
	Covariance() *mat.SymDense
	Correlation() *model.CorrelationMatrix
	SpearmanCorrelation() *model.CorrelationMatrix
	KendallTau() *model.CorrelationMatrix

	// Marginal receives checked, duplicate-free indices.
	Marginal(indices model.Indices) (Family, error)

	IsElliptical() bool
	HasEllipticalCopula() bool
	HasIndependentCopula() bool

	Parameters() model.ParameterSet
}

// gradient is implemented by families with an analytic density gradient.
type gradient interface {
	DDF(x model.Point) model.Point
}

// exactLevelSet is implemented by families whose minimum volume level set
// is known in closed form.
type exactLevelSet interface {
	MinimumVolumeLevelSet(p float64) LevelSetResult
}

// Distribution is an immutable distribution instance. All its methods are
// safe for concurrent use.
type Distribution struct {
	family   Family
	settings config.Settings
	logger   *zap.Logger
	observer solver.Observer
}

type options struct {
	settings config.Settings
	logger   *zap.Logger
	observer solver.Observer
}

type Option func(*options)

// WithSettings replaces the default numerical settings.
func WithSettings(settings config.Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics reports solver iterations and failures to observer, usually
// a *metrics.SolverMetrics.
func WithMetrics(observer solver.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{settings: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.settings.Validate(); err != nil {
		return options{}, err
	}
	if o.logger == nil {
		o.logger = utils.GetLogger(context.Background())
	}
	return o, nil
}

func (o options) integrator() mvn.Integrator {
	return mvn.NewIntegrator(o.settings.Integration)
}

func (o options) solver(operation string) solver.Solver {
	return solver.New(o.settings.Solver, operation, o.observer)
}

func (o options) build(family Family) *Distribution {
	return &Distribution{
		family:   family,
		settings: o.settings,
		logger:   o.logger,
		observer: o.observer,
	}
}

func (d *Distribution) options() options {
	return options{settings: d.settings, logger: d.logger, observer: d.observer}
}

func (d *Distribution) solver(operation string) solver.Solver {
	return d.options().solver(operation)
}

func (d *Distribution) Name() string {
	return d.family.Name()
}

func (d *Distribution) Dimension() int {
	return d.family.Dimension()
}

// Settings returns the settings the distribution was built with.
func (d *Distribution) Settings() config.Settings {
	return d.settings
}

// Parameters exposes the full parameter state; FromParameters rebuilds an
// equal distribution from it.
func (d *Distribution) Parameters() model.ParameterSet {
	return d.family.Parameters()
}

func (d *Distribution) Range() model.Interval {
	return d.family.Range()
}

func (d *Distribution) IsElliptical() bool {
	return d.family.IsElliptical()
}

func (d *Distribution) HasEllipticalCopula() bool {
	return d.family.HasEllipticalCopula()
}

// HasIndependentCopula is true iff the components are independent; for
// the Gaussian families that is iff the correlation matrix is the identity.
func (d *Distribution) HasIndependentCopula() bool {
	return d.family.HasIndependentCopula()
}

// checkPoint rejects points of the wrong dimension and points with a NaN
// coordinate, for which no probability is defined. Infinite coordinates
// are accepted.
func (d *Distribution) checkPoint(x model.Point) error {
	if len(x) != d.Dimension() {
		return fmt.Errorf("%s: point of dimension %d, want %d: %w",
			d.Name(), len(x), d.Dimension(), common.ErrorDimensionMismatch)
	}
	for i, v := range x {
		if math.IsNaN(v) {
			return fmt.Errorf("%s: coordinate %d of %v is NaN: %w",
				d.Name(), i, x, common.ErrorInvalidArgument)
		}
	}
	return nil
}

func checkProbability(operation string, p float64) error {
	if !(p > 0 && p < 1) {
		return fmt.Errorf("%s: probability %v outside (0, 1): %w", operation, p, common.ErrorInvalidArgument)
	}
	return nil
}
