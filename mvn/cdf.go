package mvn

import (
	"math"

	"github.com/uyouii/copula-algorithms/config"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// Integrator evaluates Φ_R. Dimensions up to MaxRecursiveDimension are
// reduced one variable at a time by conditioning on the first coordinate
// and integrating with composite Gauss-Legendre panels; larger ones use a
// randomised lattice rule over the Cholesky-transformed integrand.
type Integrator struct {
	config.IntegrationSettings
}

func NewIntegrator(settings config.IntegrationSettings) Integrator {
	return Integrator{IntegrationSettings: settings}
}

// CDF returns P(X <= h) for X ~ N(0, r). r must be a positive definite
// correlation matrix of the same dimension as h.
func (in Integrator) CDF(h []float64, r mat.Symmetric) float64 {
	var keep []int
	for i, v := range h {
		switch {
		case math.IsNaN(v):
			return math.NaN()
		case math.IsInf(v, -1):
			return 0
		case math.IsInf(v, 1):
			continue
		}
		keep = append(keep, i)
	}

	hs := make([]float64, len(keep))
	rs := mat.NewSymDense(max(len(keep), 1), nil)
	for a, i := range keep {
		hs[a] = h[i]
		for b, j := range keep[a:] {
			rs.SetSym(a, a+b, r.At(i, j))
		}
	}
	return in.cdf(hs, rs)
}

func (in Integrator) cdf(h []float64, r *mat.SymDense) float64 {
	switch d := len(h); {
	case d == 0:
		return 1
	case d == 1:
		return Phi(h[0])
	case d == 2:
		return BivariateCDF(h[0], h[1], r.At(0, 1))
	case d > in.MaxRecursiveDimension:
		return in.lattice(h, r)
	}
	return in.conditional(h, r)
}

// conditional integrates φ(t) Φ_{R'}(h'(t)) over t <= h_0, where R' and
// h'(t) describe the remaining coordinates given X_0 = t.
func (in Integrator) conditional(h []float64, r *mat.SymDense) float64 {
	d := len(h)
	rho := make([]float64, d-1)
	scale := make([]float64, d-1)
	for i := range rho {
		rho[i] = r.At(i+1, 0)
		scale[i] = math.Sqrt(math.Max(0, 1-rho[i]*rho[i]))
	}
	for _, s := range scale {
		// perfectly correlated with X_0: fall back to the lattice rule,
		// which copes with a semidefinite factor
		if s < 1e-12 {
			return in.lattice(h, r)
		}
	}

	cond := mat.NewSymDense(d-1, nil)
	for i := 0; i < d-1; i++ {
		cond.SetSym(i, i, 1)
		for j := i + 1; j < d-1; j++ {
			cond.SetSym(i, j, (r.At(i+1, j+1)-rho[i]*rho[j])/(scale[i]*scale[j]))
		}
	}

	hc := make([]float64, d-1)
	f := func(t float64) float64 {
		for i := range hc {
			hc[i] = (h[i+1] - rho[i]*t) / scale[i]
		}
		return Density(t) * in.cdf(hc, cond)
	}

	lo := -in.Cutoff
	hi := math.Min(h[0], in.Cutoff)
	if hi <= lo {
		return 0
	}
	panels := int(math.Ceil(hi - lo))
	width := (hi - lo) / float64(panels)
	sum := 0.0
	for k := 0; k < panels; k++ {
		a := lo + float64(k)*width
		sum += quad.Fixed(f, a, a+width, in.NodesPerPanel, quad.Legendre{}, 0)
	}
	return clamp01(sum)
}

// lattice is the Genz separation-of-variables estimator averaged over
// QMCShifts random shifts of a Richtmyer lattice with QMCPoints points.
func (in Integrator) lattice(h []float64, r *mat.SymDense) float64 {
	d := len(h)
	l, ok := choleskyLower(r)
	if !ok {
		return math.NaN()
	}

	gen := make([]float64, d-1)
	for i, p := range primes(d - 1) {
		gen[i] = math.Sqrt(float64(p))
	}

	src := rand.New(rand.NewSource(in.Seed))
	shift := make([]float64, d-1)
	w := make([]float64, d-1)
	y := make([]float64, d)
	total := 0.0
	for m := 0; m < in.QMCShifts; m++ {
		for i := range shift {
			shift[i] = src.Float64()
		}
		sum := 0.0
		for k := 1; k <= in.QMCPoints; k++ {
			for i := range w {
				_, v := math.Modf(float64(k)*gen[i] + shift[i])
				w[i] = math.Abs(2*v - 1)
			}
			sum += separated(h, l, w, y)
		}
		total += sum / float64(in.QMCPoints)
	}
	return clamp01(total / float64(in.QMCShifts))
}

const latticeEps = 1e-15

func separated(h []float64, l *mat.TriDense, w, y []float64) float64 {
	e := Phi(h[0] / l.At(0, 0))
	f := e
	for i := 1; i < len(h) && f > 0; i++ {
		u := math.Max(latticeEps, math.Min(1-latticeEps, w[i-1]*e))
		y[i-1] = PhiInv(u)
		s := 0.0
		for j := 0; j < i; j++ {
			s += l.At(i, j) * y[j]
		}
		if l.At(i, i) < latticeEps {
			if s <= h[i] {
				e = 1
			} else {
				e = 0
			}
		} else {
			e = Phi((h[i] - s) / l.At(i, i))
		}
		f *= e
	}
	return f
}

// choleskyLower factors r, adding a small ridge when r is only
// semidefinite.
func choleskyLower(r *mat.SymDense) (*mat.TriDense, bool) {
	var chol mat.Cholesky
	if !chol.Factorize(r) {
		n := r.SymmetricDim()
		ridged := mat.NewSymDense(n, nil)
		ridged.CopySym(r)
		for i := 0; i < n; i++ {
			ridged.SetSym(i, i, ridged.At(i, i)+1e-10)
		}
		if !chol.Factorize(ridged) {
			return nil, false
		}
	}
	var l mat.TriDense
	chol.LTo(&l)
	return &l, true
}

func primes(n int) []int {
	ps := make([]int, 0, n)
	for c := 2; len(ps) < n; c++ {
		prime := true
		for _, p := range ps {
			if p*p > c {
				break
			}
			if c%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			ps = append(ps, c)
		}
	}
	return ps
}
