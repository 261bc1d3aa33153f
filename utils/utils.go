package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat rounds f to round decimal places.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow(10, float64(round))
	return math.Round(f*scale) / scale
}

// ParseFloats parses a comma separated list like "0.2,0.2,0.2".
func ParseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	res := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// ParseInts parses a comma separated list like "1,0".
func ParseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	res := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
