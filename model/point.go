package model

import (
	"fmt"
	"strings"
)

// Point is an ordered fixed-length sequence of real values.
type Point []float64

func NewPoint(dimension int, value float64) Point {
	p := make(Point, dimension)
	for i := range p {
		p[i] = value
	}
	return p
}

func (p Point) Dimension() int {
	return len(p)
}

func (p Point) Clone() Point {
	return append(Point(nil), p...)
}

func (p Point) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
