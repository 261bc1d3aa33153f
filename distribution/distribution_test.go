package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/config"
	"github.com/uyouii/copula-algorithms/correlation"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/mvn"
)

// chainCorrelation is the d x d identity with R(i, i+1) = rho.
func chainCorrelation(t *testing.T, d int, rho float64) *model.CorrelationMatrix {
	t.Helper()
	r := model.NewCorrelationMatrix(d)
	for i := 0; i < d-1; i++ {
		r.Set(i, i+1, rho)
	}
	require.True(t, r.IsPositiveDefinite())
	return r
}

func newChainCopula(t *testing.T) *Distribution {
	t.Helper()
	c, err := NewNormalCopula(chainCorrelation(t, 3, 0.25))
	require.NoError(t, err)
	return c
}

type countingObserver struct {
	runs     map[string]int
	failures map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{runs: map[string]int{}, failures: map[string]int{}}
}

func (o *countingObserver) ObserveIterations(op string, _ int) { o.runs[op]++ }
func (o *countingObserver) ObserveFailure(op string)           { o.failures[op]++ }

func TestNormalCopulaPredicates(t *testing.T) {
	c := newChainCopula(t)
	assert.Equal(t, NormalCopulaName, c.Name())
	assert.Equal(t, 3, c.Dimension())
	assert.False(t, c.IsElliptical())
	assert.True(t, c.HasEllipticalCopula())
	assert.False(t, c.HasIndependentCopula())
	assert.Equal(t, model.Point{0.5, 0.5, 0.5}, c.Mean())

	id, err := NewNormalCopula(model.NewCorrelationMatrix(3))
	require.NoError(t, err)
	assert.True(t, id.HasIndependentCopula())
}

func TestNormalCopulaEvaluation(t *testing.T) {
	c := newChainCopula(t)
	grid := []float64{0.01, 0.2, 0.5, 0.8, 0.99}
	for _, a := range grid {
		for _, b := range grid {
			x := model.Point{a, b, 1 - a}
			pdf, err := c.PDF(x)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pdf, 0.0)
			cdf, err := c.CDF(x)
			require.NoError(t, err)
			assert.True(t, cdf >= 0 && cdf <= 1, "cdf=%v", cdf)
			logPDF, err := c.LogPDF(x)
			require.NoError(t, err)
			assert.InDelta(t, math.Log(pdf), logPDF, 1e-12)
		}
	}

	// outside the unit cube
	pdf, err := c.PDF(model.Point{0.2, 1.2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, pdf)
	cdf, err := c.CDF(model.Point{0.2, -0.1, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cdf)
	cdf, err = c.CDF(model.Point{2, 2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1, cdf, 1e-15)

	// a coordinate at 1 drops out
	cdf, err = c.CDF(model.Point{0.3, 1, 0.6})
	require.NoError(t, err)
	assert.InDelta(t, 0.3*0.6, cdf, 1e-12, "R(0,2) = 0")

	// monotone in each coordinate
	prev := 0.0
	for _, v := range grid {
		cdf, err := c.CDF(model.Point{0.4, v, 0.7})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cdf, prev)
		prev = cdf
	}
}

func TestDimensionMismatch(t *testing.T) {
	c := newChainCopula(t)
	x := model.Point{0.2, 0.2}
	_, err := c.PDF(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.LogPDF(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.CDF(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.SurvivalFunction(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.DDF(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.FiniteDifferenceDDF(x)
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
	_, err = c.ComputeProbability(model.Interval{Lower: x, Upper: x})
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
}

func TestNaNCoordinateRejected(t *testing.T) {
	normal, err := NewNormal([]float64{0, 0}, []float64{1, 1}, nil)
	require.NoError(t, err)
	dists := map[string]*Distribution{
		"copula": newChainCopula(t),
		"normal": normal,
	}
	points := map[string]model.Point{
		"copula": {0.2, math.NaN(), 0.2},
		"normal": {math.NaN(), 0.1},
	}
	for name, d := range dists {
		x := points[name]
		_, err := d.PDF(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
		_, err = d.LogPDF(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
		_, err = d.CDF(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
		_, err = d.SurvivalFunction(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
		_, err = d.DDF(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
		_, err = d.FiniteDifferenceDDF(x)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)

		upper := make(model.Point, len(x))
		for i := range upper {
			upper[i] = math.Inf(1)
		}
		_, err = d.ComputeProbability(model.Interval{Lower: x, Upper: upper})
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, name)
	}

	// infinite coordinates stay valid
	cdf, err := normal.CDF(model.Point{math.Inf(1), 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cdf, 1e-12)
}

func TestNormalCopulaDDFMatchesFiniteDifferences(t *testing.T) {
	c := newChainCopula(t)
	for _, x := range []model.Point{{0.2, 0.2, 0.2}, {0.7, 0.1, 0.45}, {0.9, 0.6, 0.3}} {
		ddf, err := c.DDF(x)
		require.NoError(t, err)
		fd, err := c.FiniteDifferenceDDF(x)
		require.NoError(t, err)
		require.Len(t, ddf, 3)
		for i := range ddf {
			assert.InDelta(t, fd[i], ddf[i], 1e-5, "x=%v i=%d", x, i)
		}
	}
}

func TestNormalCopulaDensityClosedForm(t *testing.T) {
	c := newChainCopula(t)
	m, err := c.Marginal(0, 1)
	require.NoError(t, err)

	// bivariate Gaussian copula density
	rho := 0.25
	u := model.Point{0.25, 0.6}
	z0, z1 := mvn.PhiInv(u[0]), mvn.PhiInv(u[1])
	want := math.Exp(-(rho*rho*(z0*z0+z1*z1)-2*rho*z0*z1)/(2*(1-rho*rho))) / math.Sqrt(1-rho*rho)
	pdf, err := m.PDF(u)
	require.NoError(t, err)
	assert.InDelta(t, want, pdf, 1e-12)
}

func TestQuantileRoundTrip(t *testing.T) {
	c := newChainCopula(t)
	for _, p := range []float64{0.05, 0.5, 0.95} {
		q, err := c.Quantile(p)
		require.NoError(t, err)
		require.Len(t, q, 3)
		assert.Equal(t, q[0], q[1], "equal marginal probabilities")
		assert.Equal(t, q[0], q[2])
		cdf, err := c.CDF(q)
		require.NoError(t, err)
		assert.InDelta(t, p, cdf, 1e-6, "p=%v", p)
	}

	for _, p := range []float64{0, 1, -0.1, math.NaN()} {
		_, err := c.Quantile(p)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		_, err = c.InverseSurvivalFunction(p)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	}
}

func TestInverseSurvival(t *testing.T) {
	c := newChainCopula(t)
	x, err := c.InverseSurvivalFunction(0.95)
	require.NoError(t, err)
	s, err := c.SurvivalFunction(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, s, 1e-6)
}

func TestSurvivalConsistency(t *testing.T) {
	c := newChainCopula(t)
	x := model.Point{0.2, 0.2, 0.2}
	s, err := c.SurvivalFunction(x)
	require.NoError(t, err)
	box, err := c.ComputeProbability(model.Interval{Lower: x, Upper: model.Point{1, 1, 1}})
	require.NoError(t, err)
	assert.InDelta(t, box, s, 1e-9)

	// radial symmetry of the normal copula
	cdf, err := c.CDF(model.Point{0.8, 0.8, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, cdf, s, 1e-9)

	// in dimension one, survival and distribution function add up to one
	m, err := c.Marginal(1)
	require.NoError(t, err)
	for _, v := range []float64{0.1, 0.25, 0.9} {
		s, err := m.SurvivalFunction(model.Point{v})
		require.NoError(t, err)
		cdf, err := m.CDF(model.Point{v})
		require.NoError(t, err)
		assert.InDelta(t, 1, s+cdf, 1e-14)
	}

	p, err := c.ComputeProbability(model.Interval{Lower: model.Point{0.5, 0.5, 0.5}, Upper: model.Point{0.4, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestMomentsAndDependence(t *testing.T) {
	c := newChainCopula(t)
	rs := correlation.SpearmanFromNormal(0.25)

	spearman := c.SpearmanCorrelation()
	assert.InDelta(t, rs, spearman.At(0, 1), 1e-15)
	assert.InDelta(t, 0, spearman.At(0, 2), 1e-15)
	assert.InDelta(t, correlation.KendallFromNormal(0.25), c.KendallTau().At(1, 2), 1e-15)
	assert.True(t, c.Correlation().EqualApprox(spearman, 0))

	cov := c.Covariance()
	assert.InDelta(t, 1.0/12, cov.At(1, 1), 1e-15)
	assert.InDelta(t, rs/12, cov.At(1, 2), 1e-15)

	// converting back recovers the copula parameter
	r, err := correlation.NormalCorrelationFromSpearman(spearman)
	require.NoError(t, err)
	assert.True(t, r.EqualApprox(chainCorrelation(t, 3, 0.25), 1e-14))
}

func TestMarginal(t *testing.T) {
	c := newChainCopula(t)
	for i := 0; i < 3; i++ {
		m, err := c.Marginal(i)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Dimension())
		assert.Equal(t, NormalCopulaName, m.Name())
		pdf, err := m.PDF(model.Point{0.25})
		require.NoError(t, err)
		assert.InDelta(t, 1, pdf, 1e-14)
		cdf, err := m.CDF(model.Point{0.25})
		require.NoError(t, err)
		assert.InDelta(t, 0.25, cdf, 1e-14)
		q, err := m.Quantile(0.95)
		require.NoError(t, err)
		assert.InDelta(t, 0.95, q[0], 1e-15)
	}

	m, err := c.Marginal(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, 0.25, m.Parameters().Correlation[0][1])
	cdf, err := m.CDF(model.Point{0.25, 0.25})
	require.NoError(t, err)
	z := mvn.PhiInv(0.25)
	assert.InDelta(t, mvn.BivariateCDF(z, z, 0.25), cdf, 1e-12)
	q, err := m.Quantile(0.95)
	require.NoError(t, err)
	cdf, err = m.CDF(q)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, cdf, 1e-6)

	// reordering follows the requested order
	m, err = c.Marginal(2, 0, 1)
	require.NoError(t, err)
	ps := m.Parameters()
	assert.Equal(t, 0.0, ps.Correlation[0][1])
	assert.Equal(t, 0.25, ps.Correlation[0][2])
	assert.Equal(t, 0.25, ps.Correlation[1][2])

	// components 0 and 2 are uncorrelated
	m, err = c.Marginal(0, 2)
	require.NoError(t, err)
	assert.True(t, m.HasIndependentCopula())

	_, err = c.Marginal()
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	_, err = c.Marginal(3)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	_, err = c.Marginal(-1)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	_, err = c.Marginal(0, 0)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	_, err = c.Marginal(2, 1, 2)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestMarginalOfIndependentStructure(t *testing.T) {
	c, err := NewNormalCopula(model.NewCorrelationMatrix(4))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		m, err := c.Marginal(i)
		require.NoError(t, err)
		for _, v := range []float64{0.1, 0.5, 0.77} {
			pdf, err := m.PDF(model.Point{v})
			require.NoError(t, err)
			assert.InDelta(t, 1, pdf, 1e-14)
		}
	}
}

func TestMarginalIsIndependent(t *testing.T) {
	r := chainCorrelation(t, 3, 0.25)
	c, err := NewNormalCopula(r)
	require.NoError(t, err)
	m, err := c.Marginal(0, 1)
	require.NoError(t, err)

	// the parent's matrix is not aliased
	r.Set(0, 1, 0.5)
	assert.Equal(t, 0.25, m.Parameters().Correlation[1][0])
	assert.Equal(t, 0.25, c.Parameters().Correlation[0][1])
}

func TestInvalidParameters(t *testing.T) {
	_, err := NewNormalCopula(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	notPD, err := model.NewCorrelationMatrixFromRows([][]float64{
		{1, 0.9, 0.9},
		{0.9, 1, -0.9},
		{0.9, -0.9, 1},
	})
	require.NoError(t, err)
	_, err = NewNormalCopula(notPD)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	badDiagonal := model.NewCorrelationMatrix(2)
	badDiagonal.Set(1, 1, 2)
	_, err = NewNormalCopula(badDiagonal)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	_, err = NewIndependentCopula(0)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	_, err = NewNormal([]float64{0, 0}, []float64{1, -1}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
	_, err = NewNormal([]float64{0, 0}, []float64{1}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
	_, err = NewNormal([]float64{0, 0}, []float64{1, 1}, model.NewCorrelationMatrix(3))
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	settings := config.Default()
	settings.Solver.MaxIterations = 0
	_, err = NewIndependentCopula(2, WithSettings(settings))
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
}

func TestSolverObserver(t *testing.T) {
	obs := newCountingObserver()
	c, err := NewNormalCopula(chainCorrelation(t, 2, 0.5), WithMetrics(obs))
	require.NoError(t, err)
	_, err = c.Quantile(0.3)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.runs["quantile"])

	// the marginal keeps the observer
	m, err := c.Marginal(1, 0)
	require.NoError(t, err)
	_, err = m.InverseSurvivalFunction(0.3)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.runs["inverse survival"])
	assert.Empty(t, obs.failures)
}

func TestConvergenceFailure(t *testing.T) {
	settings := config.Default()
	settings.Solver.MaxIterations = 1
	settings.Solver.AbsoluteTolerance = 1e-300
	settings.Solver.RelativeTolerance = 0
	settings.Solver.ResidualTolerance = 0
	obs := newCountingObserver()
	c, err := NewNormalCopula(chainCorrelation(t, 2, 0.5), WithSettings(settings), WithMetrics(obs))
	require.NoError(t, err)
	_, err = c.Quantile(0.3)
	assert.ErrorIs(t, err, common.ErrorConvergenceFailure)
	assert.Equal(t, 1, obs.failures["quantile"])
}
