package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
)

func checkIntervalResult(t *testing.T, d *Distribution, res IntervalResult, p float64) {
	t.Helper()
	prob, err := d.ComputeProbability(res.Interval)
	require.NoError(t, err)
	assert.InDelta(t, prob, res.Coverage, 1e-12)
	assert.InDelta(t, p, res.Coverage, 1e-6)
	assert.GreaterOrEqual(t, res.MarginalProbability, p-1e-12)
}

func TestBilateralConfidenceInterval(t *testing.T) {
	c, err := newChainCopula(t).Marginal(0, 1)
	require.NoError(t, err)

	res, err := c.BilateralConfidenceInterval(0.95)
	require.NoError(t, err)
	checkIntervalResult(t, c, res, 0.95)
	assert.InDelta(t, 0.95, res.Coverage, 0.01)
	for i := 0; i < 2; i++ {
		assert.InDelta(t, 1, res.Interval.Lower[i]+res.Interval.Upper[i], 1e-12)
		assert.InDelta(t, res.MarginalProbability, res.Interval.Upper[i]-res.Interval.Lower[i], 1e-12)
	}

	// in dimension one the marginal probability is p itself
	m, err := c.Marginal(0)
	require.NoError(t, err)
	res, err = m.BilateralConfidenceInterval(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, res.Interval.Lower[0], 1e-15)
	assert.InDelta(t, 0.95, res.Interval.Upper[0], 1e-15)
	assert.InDelta(t, 0.9, res.Coverage, 1e-14)
}

func TestMinimumVolumeInterval(t *testing.T) {
	c, err := newChainCopula(t).Marginal(0, 1)
	require.NoError(t, err)
	res, err := c.MinimumVolumeInterval(0.95)
	require.NoError(t, err)
	checkIntervalResult(t, c, res, 0.95)

	// uniform margins: every interval of the right probability is as short
	// as any other, and the centred one is returned
	bilateral, err := c.BilateralConfidenceInterval(0.95)
	require.NoError(t, err)
	assert.InDeltaSlice(t, bilateral.Interval.Lower, res.Interval.Lower, 1e-9)
	assert.InDeltaSlice(t, bilateral.Interval.Upper, res.Interval.Upper, 1e-9)
}

func TestUnilateralConfidenceInterval(t *testing.T) {
	c, err := newChainCopula(t).Marginal(0, 1)
	require.NoError(t, err)

	lower, err := c.UnilateralConfidenceInterval(0.95, LowerTail)
	require.NoError(t, err)
	checkIntervalResult(t, c, lower, 0.95)
	assert.Equal(t, model.Point{0, 0}, lower.Interval.Lower)
	cdf, err := c.CDF(lower.Interval.Upper)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, cdf, 1e-6)

	upper, err := c.UnilateralConfidenceInterval(0.95, UpperTail)
	require.NoError(t, err)
	checkIntervalResult(t, c, upper, 0.95)
	assert.Equal(t, model.Point{1, 1}, upper.Interval.Upper)
	s, err := c.SurvivalFunction(upper.Interval.Lower)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, s, 1e-6)

	// radial symmetry
	assert.InDelta(t, 1-lower.Interval.Upper[0], upper.Interval.Lower[0], 1e-9)
}

func TestMinimumVolumeLevelSet(t *testing.T) {
	c, err := newChainCopula(t).Marginal(0, 1)
	require.NoError(t, err)
	res, err := c.MinimumVolumeLevelSet(0.95)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, res.Coverage, 0.01)
	assert.Greater(t, res.Threshold, 0.0)
	assert.Equal(t, res.Threshold, res.LevelSet.Threshold)

	for _, x := range []model.Point{{0.5, 0.5}, {0.01, 0.99}, {0.95, 0.97}} {
		pdf, err := c.PDF(x)
		require.NoError(t, err)
		assert.Equal(t, pdf >= res.Threshold, res.LevelSet.Contains(x))
	}
	assert.False(t, res.LevelSet.Contains(model.Point{0.5}))

	// seeded, hence reproducible
	again, err := c.MinimumVolumeLevelSet(0.95)
	require.NoError(t, err)
	assert.Equal(t, res.Threshold, again.Threshold)
	assert.Equal(t, res.Coverage, again.Coverage)
}

func TestRegionsUnsupportedAboveDimensionTwo(t *testing.T) {
	c := newChainCopula(t)
	_, err := c.MinimumVolumeInterval(0.95)
	assert.ErrorIs(t, err, common.ErrorUnsupportedOperation)
	_, err = c.MinimumVolumeLevelSet(0.95)
	assert.ErrorIs(t, err, common.ErrorUnsupportedOperation)
	_, err = c.BilateralConfidenceInterval(0.95)
	assert.ErrorIs(t, err, common.ErrorUnsupportedOperation)
	_, err = c.UnilateralConfidenceInterval(0.95, LowerTail)
	assert.ErrorIs(t, err, common.ErrorUnsupportedOperation)
	_, err = c.UnilateralConfidenceInterval(0.95, UpperTail)
	assert.ErrorIs(t, err, common.ErrorUnsupportedOperation)
}

func TestRegionsInvalidProbability(t *testing.T) {
	c, err := newChainCopula(t).Marginal(0, 1)
	require.NoError(t, err)
	for _, p := range []float64{0, 1, 1.5, math.NaN()} {
		_, err = c.MinimumVolumeInterval(p)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		_, err = c.MinimumVolumeLevelSet(p)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		_, err = c.BilateralConfidenceInterval(p)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		_, err = c.UnilateralConfidenceInterval(p, UpperTail)
		assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	}
}
