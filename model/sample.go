package model

import (
	"fmt"
	"sort"

	"github.com/uyouii/copula-algorithms/common"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sample is an ordered collection of points sharing one dimension.
// Aggregate statistics are computed on demand and never cached.
type Sample struct {
	dimension int
	points    []Point
}

func NewSample(dimension int) *Sample {
	return &Sample{dimension: dimension}
}

// NewSampleFromPoints copies points into a new sample.
func NewSampleFromPoints(dimension int, points []Point) (*Sample, error) {
	s := &Sample{dimension: dimension, points: make([]Point, 0, len(points))}
	for _, p := range points {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sample) Add(p Point) error {
	if len(p) != s.dimension {
		return fmt.Errorf("point of dimension %d added to sample of dimension %d: %w",
			len(p), s.dimension, common.ErrorDimensionMismatch)
	}
	s.points = append(s.points, p.Clone())
	return nil
}

func (s *Sample) Size() int {
	return len(s.points)
}

func (s *Sample) Dimension() int {
	return s.dimension
}

// At returns a copy of the i'th point.
func (s *Sample) At(i int) Point {
	return s.points[i].Clone()
}

// Column returns the j'th coordinate of every point.
func (s *Sample) Column(j int) []float64 {
	col := make([]float64, len(s.points))
	for i, p := range s.points {
		col[i] = p[j]
	}
	return col
}

// Matrix returns the sample as a Size x Dimension matrix.
func (s *Sample) Matrix() *mat.Dense {
	m := mat.NewDense(len(s.points), s.dimension, nil)
	for i, p := range s.points {
		m.SetRow(i, p)
	}
	return m
}

func (s *Sample) ComputeMean() Point {
	mean := make(Point, s.dimension)
	if len(s.points) == 0 {
		return mean
	}
	for j := range mean {
		mean[j] = stat.Mean(s.Column(j), nil)
	}
	return mean
}

// ComputeCovariance returns the unbiased covariance matrix.
func (s *Sample) ComputeCovariance() *mat.SymDense {
	var cov mat.SymDense
	if len(s.points) < 2 {
		return mat.NewSymDense(s.dimension, nil)
	}
	stat.CovarianceMatrix(&cov, s.Matrix(), nil)
	return &cov
}

func (s *Sample) ComputeStandardDeviation() Point {
	std := make(Point, s.dimension)
	if len(s.points) < 2 {
		return std
	}
	for j := range std {
		std[j] = stat.StdDev(s.Column(j), nil)
	}
	return std
}

// ComputeSpearmanCorrelation is the Pearson correlation of the ranks.
func (s *Sample) ComputeSpearmanCorrelation() *CorrelationMatrix {
	ranks := make([][]float64, s.dimension)
	for j := range ranks {
		ranks[j] = rank(s.Column(j))
	}
	c := NewCorrelationMatrix(s.dimension)
	for i := 0; i < s.dimension; i++ {
		for j := 0; j < i; j++ {
			c.Set(i, j, stat.Correlation(ranks[i], ranks[j], nil))
		}
	}
	return c
}

func (s *Sample) ComputeKendallTau() *CorrelationMatrix {
	c := NewCorrelationMatrix(s.dimension)
	for i := 0; i < s.dimension; i++ {
		xi := s.Column(i)
		for j := 0; j < i; j++ {
			c.Set(i, j, stat.Kendall(xi, s.Column(j), nil))
		}
	}
	return c
}

// rank returns the 1-based ranks of xs, ties getting their average rank.
func rank(xs []float64) []float64 {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	ranks := make([]float64, len(xs))
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && xs[order[j]] == xs[order[i]] {
			j++
		}
		r := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = r
		}
		i = j
	}
	return ranks
}
