package mvn

import "math"

// Gauss-Legendre abscissae and weights on [-1, 1] for 6, 12 and 20
// points; only the positive half is stored.
var (
	bvnWeights = [3][]float64{
		{0.1713244923791705, 0.3607615730481384, 0.4679139345726904},
		{0.04717533638651177, 0.1069393259953183, 0.1600783285433464,
			0.2031674267230659, 0.2334925365383547, 0.2491470458134029},
		{0.01761400713915212, 0.04060142980038694, 0.06267204833410906,
			0.08327674157670475, 0.1019301198172404, 0.1181945319615184,
			0.1316886384491766, 0.1420961093183821, 0.1491729864726037,
			0.1527533871307259},
	}
	bvnNodes = [3][]float64{
		{0.9324695142031522, 0.6612093864662647, 0.2386191860831970},
		{0.9815606342467191, 0.9041172563704750, 0.7699026741943050,
			0.5873179542866171, 0.3678314989981802, 0.1252334085114692},
		{0.9931285991850949, 0.9639719272779138, 0.9122344282513259,
			0.8391169718222188, 0.7463319064601508, 0.6360536807265150,
			0.5108670019508271, 0.3737060887154196, 0.2277858511416451,
			0.07652652113349733},
	}
)

// BivariateCDF returns P(X <= h, Y <= k) for a standard bivariate normal
// pair with correlation rho.
func BivariateCDF(h, k, rho float64) float64 {
	return bivariateUpper(-h, -k, rho)
}

// bivariateUpper returns P(X > h, Y > k).
//
// Drezner, Z. and Wesolowsky, G. O. (1990) On the computation of the
// bivariate normal integral, Journal of Statistical Computation and
// Simulation 35, pp. 101-107, with the modifications for large
// correlations from Genz, A. (2004) Numerical computation of rectangular
// bivariate and trivariate normal and t probabilities, Statistics and
// Computing 14, pp. 251-260.
func bivariateUpper(h, k, r float64) float64 {
	switch {
	case math.IsNaN(h) || math.IsNaN(k) || math.IsNaN(r):
		return math.NaN()
	case math.IsInf(h, 1) || math.IsInf(k, 1):
		return 0
	case math.IsInf(h, -1):
		if math.IsInf(k, -1) {
			return 1
		}
		return Phi(-k)
	case math.IsInf(k, -1):
		return Phi(-h)
	}

	var ng int
	switch ar := math.Abs(r); {
	case ar < 0.3:
		ng = 0
	case ar < 0.75:
		ng = 1
	default:
		ng = 2
	}
	w, x := bvnWeights[ng], bvnNodes[ng]

	hk := h * k
	bvn := 0.0
	if math.Abs(r) < 0.925 {
		hs := (h*h + k*k) / 2
		asr := math.Asin(r)
		for i := range x {
			sn := math.Sin(asr * (1 - x[i]) / 2)
			bvn += w[i] * math.Exp((sn*hk-hs)/(1-sn*sn))
			sn = math.Sin(asr * (1 + x[i]) / 2)
			bvn += w[i] * math.Exp((sn*hk-hs)/(1-sn*sn))
		}
		bvn = bvn*asr/(4*math.Pi) + Phi(-h)*Phi(-k)
		return clamp01(bvn)
	}

	if r < 0 {
		k = -k
		hk = -hk
	}
	if math.Abs(r) < 1 {
		as := (1 - r) * (1 + r)
		a := math.Sqrt(as)
		bs := (h - k) * (h - k)
		c := (4 - hk) / 8
		d := (12 - hk) / 16
		asr := -(bs/as + hk) / 2
		if asr > -100 {
			bvn = a * math.Exp(asr) * (1 - c*(bs-as)*(1-d*bs/5)/3 + c*d*as*as/5)
		}
		if hk > -100 {
			b := math.Sqrt(bs)
			sp := math.Sqrt(2*math.Pi) * Phi(-b/a)
			bvn -= math.Exp(-hk/2) * sp * b * (1 - c*bs*(1-d*bs/5)/3)
		}
		a /= 2
		for i := range x {
			for _, sign := range [2]float64{-1, 1} {
				xs := a * (sign*x[i] + 1)
				xs *= xs
				rs := math.Sqrt(1 - xs)
				asr := -(bs/xs + hk) / 2
				if asr > -100 {
					sp := 1 + c*xs*(1+d*xs)
					ep := math.Exp(-hk*xs/(2*(1+rs)*(1+rs))) / rs
					bvn += a * w[i] * math.Exp(asr) * (ep - sp)
				}
			}
		}
		bvn = -bvn / (2 * math.Pi)
	}

	switch {
	case r > 0:
		bvn += Phi(-math.Max(h, k))
	case h >= k:
		bvn = -bvn
	default:
		var l float64
		if h < 0 {
			l = Phi(k) - Phi(h)
		} else {
			l = Phi(-h) - Phi(-k)
		}
		bvn = l - bvn
	}
	return clamp01(bvn)
}
