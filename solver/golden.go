package solver

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
)

// invPhi is 1/φ where φ is the golden ratio.
const invPhi = 0.6180339887498949

// Minimize returns the minimiser of a unimodal f on [a, b] by golden-section
// search. f is only evaluated strictly inside the interval, so it may be
// infinite at the end points.
func (s Solver) Minimize(f func(float64) float64, a, b float64) (float64, float64, error) {
	if !(a < b) {
		return 0, 0, fmt.Errorf("%s: empty search interval [%g, %g]: %w",
			s.Operation, a, b, common.ErrorInvalidArgument)
	}
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for iter := 1; iter <= s.MaxIterations; iter++ {
		tol := s.AbsoluteTolerance + s.RelativeTolerance*math.Abs(x1+x2)/2
		if b-a <= tol {
			s.observer().ObserveIterations(s.Operation, iter)
			if f1 <= f2 {
				return x1, f1, nil
			}
			return x2, f2, nil
		}
		if f1 <= f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	s.observer().ObserveFailure(s.Operation)
	return 0, 0, fmt.Errorf("%s: no minimum within %d iterations: %w",
		s.Operation, s.MaxIterations, common.ErrorConvergenceFailure)
}
