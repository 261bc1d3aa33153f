package model

import "fmt"

// LevelSet is the region {x : Function(x) >= Threshold}.
type LevelSet struct {
	Dimension int
	Function  func(Point) float64
	Threshold float64
}

func (ls LevelSet) Contains(x Point) bool {
	if len(x) != ls.Dimension || ls.Function == nil {
		return false
	}
	return ls.Function(x) >= ls.Threshold
}

func (ls LevelSet) String() string {
	return fmt.Sprintf("{x in R^%d : density(x) >= %g}", ls.Dimension, ls.Threshold)
}
