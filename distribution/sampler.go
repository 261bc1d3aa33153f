package distribution

import (
	"fmt"
	"sync"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
)

// RandomSource supplies uniform draws in [0, 1) and standard normal draws.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type RandomSource interface {
	Float64() float64
	NormFloat64() float64
}

// Sampler draws realizations of a distribution from an injected random
// source. The source is only touched under the sampler's lock, once per
// call, so a Sampler may be shared between goroutines.
type Sampler struct {
	dist *Distribution

	mu      sync.Mutex
	src     RandomSource
	history model.HistoryStrategy
}

type SamplerOption func(*Sampler)

// WithHistory records every drawn point in history.
func WithHistory(history model.HistoryStrategy) SamplerOption {
	return func(s *Sampler) {
		s.history = history
	}
}

func NewSampler(dist *Distribution, src RandomSource, opts ...SamplerOption) (*Sampler, error) {
	if dist == nil || src == nil {
		return nil, fmt.Errorf("sampler needs a distribution and a random source: %w", common.ErrorInvalidArgument)
	}
	s := &Sampler{dist: dist, src: src}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sampler) Realization() model.Point {
	return s.draw(1)[0]
}

// Sample draws n independent points. Drawing n points consumes the source
// exactly like n calls to Realization.
func (s *Sampler) Sample(n int) (*model.Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample size %d: %w", n, common.ErrorInvalidArgument)
	}
	return model.NewSampleFromPoints(s.dist.Dimension(), s.draw(n))
}

// History returns a copy of the recorded points, nil without WithHistory.
func (s *Sampler) History() *model.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return nil
	}
	return s.history.Sample()
}

func (s *Sampler) draw(n int) []model.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := s.dist.family.Realize(s.src, n)
	if s.history != nil {
		for _, p := range points {
			s.history.Store(p)
		}
	}
	return points
}
