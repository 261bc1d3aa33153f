package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/copula-algorithms/common"
)

func TestCorrelationMatrix(t *testing.T) {
	r := NewCorrelationMatrix(3)
	assert.True(t, r.IsIdentity())
	r.Set(0, 1, 0.25)
	r.Set(1, 2, 0.25)
	assert.Equal(t, 0.25, r.At(1, 0))
	assert.False(t, r.IsIdentity())
	require.NoError(t, r.Validate())
	assert.True(t, r.IsPositiveDefinite())

	sub := r.Sub(Indices{2, 1})
	assert.Equal(t, 2, sub.Dimension())
	assert.Equal(t, 0.25, sub.At(0, 1))

	c := r.Clone()
	c.Set(0, 2, 0.5)
	assert.Equal(t, 0.0, r.At(0, 2))

	r.Set(0, 1, 1.5)
	assert.ErrorIs(t, r.Validate(), common.ErrorInvalidParameter)

	singular := NewCorrelationMatrix(2)
	singular.Set(0, 1, 1)
	require.NoError(t, singular.Validate())
	assert.False(t, singular.IsPositiveDefinite())
}

func TestCorrelationMatrixFromRows(t *testing.T) {
	r, err := NewCorrelationMatrixFromRows([][]float64{{1, 0.5}, {0.5, 1}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0.5}, {0.5, 1}}, r.Rows())

	_, err = NewCorrelationMatrixFromRows([][]float64{{1, 0.5}, {0.4, 1}})
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
	_, err = NewCorrelationMatrixFromRows([][]float64{{1, 0.5}, {0.5}})
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)
	_, err = NewCorrelationMatrixFromRows(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidParameter)

	bad, err := NewCorrelationMatrixFromRows([][]float64{{2, 0}, {0, 1}})
	require.NoError(t, err)
	assert.ErrorIs(t, bad.Validate(), common.ErrorInvalidParameter)
}

func TestIndices(t *testing.T) {
	assert.ErrorIs(t, Indices{}.Check(3), common.ErrorInvalidArgument)
	assert.ErrorIs(t, Indices{3}.Check(3), common.ErrorInvalidArgument)
	assert.ErrorIs(t, Indices{-1}.Check(3), common.ErrorInvalidArgument)
	assert.NoError(t, Indices{1, 0}.Check(3))
	assert.NoError(t, Indices{1, 1}.Check(3))
	assert.True(t, Indices{1, 1}.HasDuplicates())
	assert.False(t, Indices{2, 0, 1}.HasDuplicates())
	assert.Equal(t, Point{3, 1}, Indices{2, 0}.Select(Point{1, 2, 3}))
}

func TestInterval(t *testing.T) {
	in, err := NewInterval(Point{0, math.Inf(-1)}, Point{1, 2})
	require.NoError(t, err)
	assert.True(t, in.Contains(Point{0.5, -100}))
	assert.False(t, in.Contains(Point{1.5, 0}))
	assert.False(t, in.Contains(Point{0.5}))
	assert.True(t, math.IsInf(in.Volume(), 1))
	assert.False(t, in.IsEmpty())

	box, err := NewInterval(Point{0, 0}, Point{0.5, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, box.Volume())

	_, err = NewInterval(Point{0}, Point{1, 2})
	assert.ErrorIs(t, err, common.ErrorDimensionMismatch)
}

func TestLevelSet(t *testing.T) {
	ls := LevelSet{
		Dimension: 1,
		Function:  func(p Point) float64 { return -p[0] * p[0] },
		Threshold: -1,
	}
	assert.True(t, ls.Contains(Point{0.5}))
	assert.False(t, ls.Contains(Point{2}))
	assert.False(t, ls.Contains(Point{0, 0}))
}

func TestSampleStatistics(t *testing.T) {
	s := NewSample(2)
	for _, p := range []Point{{1, 2}, {2, 4}, {3, 6}, {4, 8}} {
		require.NoError(t, s.Add(p))
	}
	assert.ErrorIs(t, s.Add(Point{1}), common.ErrorDimensionMismatch)
	assert.Equal(t, 4, s.Size())
	assert.Equal(t, Point{2.5, 5}, s.ComputeMean())

	cov := s.ComputeCovariance()
	assert.InDelta(t, 5.0/3, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 10.0/3, cov.At(0, 1), 1e-12)
	assert.InDelta(t, 20.0/3, cov.At(1, 1), 1e-12)

	std := s.ComputeStandardDeviation()
	assert.InDelta(t, math.Sqrt(5.0/3), std[0], 1e-12)

	assert.InDelta(t, 1, s.ComputeSpearmanCorrelation().At(0, 1), 1e-12)
	assert.InDelta(t, 1, s.ComputeKendallTau().At(0, 1), 1e-12)

	// At returns a copy.
	p := s.At(0)
	p[0] = 100
	assert.Equal(t, 1.0, s.At(0)[0])
}

func TestRankTies(t *testing.T) {
	assert.Equal(t, []float64{1.5, 3, 1.5}, rank([]float64{2, 5, 2}))
}

func TestFullHistory(t *testing.T) {
	h := NewFull(2)
	h.Store(Point{1, 2})
	h.Store(Point{1})
	s := NewSample(2)
	require.NoError(t, s.Add(Point{3, 4}))
	h.StoreSample(s)

	got := h.Sample()
	assert.Equal(t, 2, got.Size())
	assert.Equal(t, Point{3, 4}, got.At(1))
}

func TestParameterSetYAML(t *testing.T) {
	ps, err := ParseParameterSet([]byte(`
family: NormalCopula
correlation:
  - [1, 0.25]
  - [0.25, 1]
`))
	require.NoError(t, err)
	assert.Equal(t, "NormalCopula", ps.Family)
	assert.Equal(t, 0.25, ps.Correlation[1][0])

	data, err := ps.Marshal()
	require.NoError(t, err)
	back, err := ParseParameterSet(data)
	require.NoError(t, err)
	assert.Equal(t, ps, back)

	_, err = ParseParameterSet([]byte("family: [x"))
	assert.Error(t, err)
}
