package solver

import (
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
)

const machineEpsilon = 2.220446049250313e-16

// FindRoot finds x in [a, b] with f(x) = 0 using Brent's method. f(a) and
// f(b) must have opposite signs (or one of them must be zero).
//
// The iteration combines bisection, secant and inverse quadratic
// interpolation steps and falls back to bisection whenever an
// interpolation step would not shrink the bracket fast enough, so it
// converges at least as fast as bisection.
//
// Brent, R. P. (1973) Algorithms for Minimization without Derivatives,
// chapter 4.
func (s Solver) FindRoot(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		s.observer().ObserveIterations(s.Operation, 0)
		return a, nil
	}
	if fb == 0 {
		s.observer().ObserveIterations(s.Operation, 0)
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || (fa > 0) == (fb > 0) {
		s.observer().ObserveFailure(s.Operation)
		return 0, fmt.Errorf("%s: root not bracketed by [%g, %g] (f=%g, %g): %w",
			s.Operation, a, b, fa, fb, common.ErrorConvergenceFailure)
	}

	c, fc := b, fb
	d := b - a
	e := d
	for iter := 1; iter <= s.MaxIterations; iter++ {
		if (fb > 0) == (fc > 0) {
			// Keep the root bracketed by b and c.
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*machineEpsilon*math.Abs(b) + 0.5*s.AbsoluteTolerance + s.RelativeTolerance*math.Abs(b)
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 || math.Abs(fb) <= s.ResidualTolerance {
			s.observer().ObserveIterations(s.Operation, iter)
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			sr := fb / fa
			if a == c {
				// Secant step.
				p = 2 * xm * sr
				q = 1 - sr
			} else {
				// Inverse quadratic interpolation.
				qr := fa / fc
				r := fb / fc
				p = sr * (2*xm*qr*(qr-r) - (b-a)*(r-1))
				q = (qr - 1) * (r - 1) * (sr - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, xm)
		}
		fb = f(b)
		if math.IsNaN(fb) {
			break
		}
	}

	s.observer().ObserveFailure(s.Operation)
	return 0, fmt.Errorf("%s: no root within %d iterations: %w",
		s.Operation, s.MaxIterations, common.ErrorConvergenceFailure)
}
