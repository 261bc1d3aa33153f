package kde

import (
	"sort"

	"github.com/uyouii/copula-algorithms/model"
)

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	grid[num-1] = stop
	return grid
}

// Clip drops the observations (and their weights) rejected by clip.
func Clip(x []float64, weights []float64, clip *model.Clip) ([]float64, []float64) {
	if len(x) != len(weights) || clip == nil {
		// do nothing
		return x, weights
	}

	resX, resWeight := []float64{}, []float64{}
	for i := range x {
		if clip.Keep(x[i]) {
			resX = append(resX, x[i])
			resWeight = append(resWeight, weights[i])
		}
	}
	return resX, resWeight
}

func InitOnes(n int) []float64 {
	res := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, 1)
	}
	return res
}

// sortTogether sorts x ascending and applies the same permutation to
// weights.
func sortTogether(x, weights []float64) {
	sort.Sort(byValue{x: x, w: weights})
}

type byValue struct {
	x, w []float64
}

func (b byValue) Len() int           { return len(b.x) }
func (b byValue) Less(i, j int) bool { return b.x[i] < b.x[j] }
func (b byValue) Swap(i, j int) {
	b.x[i], b.x[j] = b.x[j], b.x[i]
	b.w[i], b.w[j] = b.w[j], b.w[i]
}
