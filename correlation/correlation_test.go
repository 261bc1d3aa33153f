package correlation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
)

func matrix(t *testing.T, rows [][]float64) *model.CorrelationMatrix {
	m, err := model.NewCorrelationMatrixFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestSpearmanRoundTrip(t *testing.T) {
	s := matrix(t, [][]float64{
		{1, 0.3, -0.2},
		{0.3, 1, 0.5},
		{-0.2, 0.5, 1},
	})
	r, err := NormalCorrelationFromSpearman(s)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Sin(math.Pi*0.3/6), r.At(0, 1), 1e-15)
	assert.InDelta(t, r.At(0, 1), r.At(1, 0), 0)
	assert.Equal(t, 1.0, r.At(2, 2))

	back, err := SpearmanFromNormalCorrelation(r)
	require.NoError(t, err)
	assert.True(t, back.EqualApprox(s, 1e-14), "got %v", back)
}

func TestKendallRoundTrip(t *testing.T) {
	k := matrix(t, [][]float64{
		{1, 0.4},
		{0.4, 1},
	})
	r, err := NormalCorrelationFromKendall(k)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.2*math.Pi), r.At(0, 1), 1e-15)

	back, err := KendallFromNormalCorrelation(r)
	require.NoError(t, err)
	assert.True(t, back.EqualApprox(k, 1e-14))
}

func TestScalarFixedPoints(t *testing.T) {
	for _, v := range []float64{-1, 0, 1} {
		assert.InDelta(t, v, SpearmanFromNormal(v), 1e-15)
		assert.InDelta(t, v, KendallFromNormal(v), 1e-15)
	}
}

func TestConvertedNotPositiveDefinite(t *testing.T) {
	// a valid-looking Kendall matrix whose sine transform has a negative
	// eigenvalue
	k := matrix(t, [][]float64{
		{1, 0.9, 0.9},
		{0.9, 1, -0.9},
		{0.9, -0.9, 1},
	})
	_, err := NormalCorrelationFromKendall(k)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
}

func TestInvalidInput(t *testing.T) {
	m := model.NewCorrelationMatrix(2)
	m.Set(0, 1, 1.5)
	_, err := NormalCorrelationFromSpearman(m)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	_, err = KendallFromNormalCorrelation(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
}
