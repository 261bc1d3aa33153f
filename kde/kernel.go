package kde

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Kernel interface {
	NormalReferenceConstant() float64
}

// GaussianKernel evaluates a weighted mixture of normal bumps of width h
// centred on the observations.
type GaussianKernel struct {
	l2Norm                  float64
	kernelVar               float64
	order                   int
	normalReferenceConstant float64
	h                       float64
	weights                 []float64
}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{
		l2Norm:    1.0 / (2.0 * math.Sqrt(math.Pi)),
		kernelVar: 1.0,
		order:     2,
		h:         1.0,
	}
}

func (k *GaussianKernel) SetH(h float64) {
	k.h = h
}

// SetWeights normalises weights to sum to one. A nil slice means equal
// weights.
func (k *GaussianKernel) SetWeights(weights []float64) {
	if weights == nil {
		k.weights = nil
		return
	}
	sum := 0.0
	for _, v := range weights {
		sum += v
	}
	kernelWeights := make([]float64, len(weights))
	if sum != 0 {
		for i := range weights {
			kernelWeights[i] = weights[i] / sum
		}
	}
	k.weights = kernelWeights
}

func (k *GaussianKernel) Shape(x float64) float64 {
	return 0.3989422804014327 * math.Exp(-x*x/2.0)
}

// Integral is the primitive of Shape.
func (k *GaussianKernel) Integral(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// Slope is the derivative of Shape.
func (k *GaussianKernel) Slope(x float64) float64 {
	return -x * k.Shape(x)
}

func (k *GaussianKernel) NormalReferenceConstant() float64 {
	nu := k.order
	if k.normalReferenceConstant == 0 {
		numerator := math.Pow(math.Pi, 0.5) * math.Pow(factorial(nu), 3) * k.l2Norm
		denom := 2.0 * float64(nu) * factorial(2*nu) * math.Pow(k.Moments(nu), 2)
		C := 2 * math.Pow(numerator/denom, 1.0/float64(2*nu+1))
		k.normalReferenceConstant = C
	}
	return k.normalReferenceConstant
}

func (k *GaussianKernel) Moments(n int) float64 {
	if n == 1 {
		return 0
	}
	if n == 2 {
		return k.kernelVar
	}
	return 1.0
}

func (k *GaussianKernel) Density(xs []float64, x float64) float64 {
	return k.sum(xs, x, k.Shape) / k.h
}

func (k *GaussianKernel) CDF(xs []float64, x float64) float64 {
	return k.sum(xs, x, k.Integral)
}

func (k *GaussianKernel) Derivative(xs []float64, x float64) float64 {
	return k.sum(xs, x, k.Slope) / (k.h * k.h)
}

func (k *GaussianKernel) sum(xs []float64, x float64, f func(float64) float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}

	h := k.h
	sum := 0.0
	if k.weights != nil {
		for i, xi := range xs {
			sum += f((x-xi)/h) * k.weights[i]
		}
		return sum
	}

	for _, xi := range xs {
		sum += f((x - xi) / h)
	}
	return sum / float64(n)
}
