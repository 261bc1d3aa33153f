package model

import (
	"fmt"

	"github.com/uyouii/copula-algorithms/common"
)

// Indices selects dimensions of a distribution, in the requested order.
type Indices []int

// Check verifies that the list is non-empty and that every index lies in
// [0, dimension). Duplicates and reordering are allowed here; whether a
// family can represent them is decided by its marginalizer.
func (ind Indices) Check(dimension int) error {
	if len(ind) == 0 {
		return fmt.Errorf("empty indices: %w", common.ErrorInvalidArgument)
	}
	for _, i := range ind {
		if i < 0 || i >= dimension {
			return fmt.Errorf("index %d not in [0, %d): %w", i, dimension, common.ErrorInvalidArgument)
		}
	}
	return nil
}

func (ind Indices) HasDuplicates() bool {
	seen := make(map[int]struct{}, len(ind))
	for _, i := range ind {
		if _, ok := seen[i]; ok {
			return true
		}
		seen[i] = struct{}{}
	}
	return false
}

// Select returns (p[ind[0]], p[ind[1]], ...).
func (ind Indices) Select(p Point) Point {
	res := make(Point, len(ind))
	for k, i := range ind {
		res[k] = p[i]
	}
	return res
}
