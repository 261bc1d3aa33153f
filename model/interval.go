package model

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
)

// Interval is the box [Lower, Upper]. Bounds may be infinite.
type Interval struct {
	Lower Point `json:"lower" yaml:"lower"`
	Upper Point `json:"upper" yaml:"upper"`
}

func NewInterval(lower, upper Point) (Interval, error) {
	if len(lower) != len(upper) {
		return Interval{}, fmt.Errorf("interval bounds of dimension %d and %d: %w",
			len(lower), len(upper), common.ErrorDimensionMismatch)
	}
	return Interval{Lower: lower.Clone(), Upper: upper.Clone()}, nil
}

func (in Interval) Dimension() int {
	return len(in.Lower)
}

// IsEmpty reports whether some lower bound exceeds its upper bound.
func (in Interval) IsEmpty() bool {
	for i := range in.Lower {
		if in.Lower[i] > in.Upper[i] {
			return true
		}
	}
	return false
}

func (in Interval) Contains(x Point) bool {
	if len(x) != len(in.Lower) {
		return false
	}
	for i, v := range x {
		if v < in.Lower[i] || v > in.Upper[i] {
			return false
		}
	}
	return true
}

// Volume is the Lebesgue measure of the box, +Inf when a bound is infinite.
func (in Interval) Volume() float64 {
	if in.IsEmpty() {
		return 0
	}
	v := 1.0
	for i := range in.Lower {
		v *= in.Upper[i] - in.Lower[i]
	}
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

func (in Interval) String() string {
	return fmt.Sprintf("%v x %v", in.Lower, in.Upper)
}
