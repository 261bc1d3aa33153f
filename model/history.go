package model

// HistoryStrategy decides which of the points handed to it are kept.
type HistoryStrategy interface {
	Store(p Point)
	StoreSample(s *Sample)
	Sample() *Sample
}

// Full keeps every point it is given.
type Full struct {
	sample *Sample
}

func NewFull(dimension int) *Full {
	return &Full{sample: NewSample(dimension)}
}

// Store silently ignores points of the wrong dimension.
func (f *Full) Store(p Point) {
	_ = f.sample.Add(p)
}

func (f *Full) StoreSample(s *Sample) {
	for _, p := range s.points {
		f.Store(p)
	}
}

// Sample returns a copy of the stored points.
func (f *Full) Sample() *Sample {
	s, _ := NewSampleFromPoints(f.sample.dimension, f.sample.points)
	return s
}
