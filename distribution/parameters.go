package distribution

import (
	"context"
	"fmt"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/kde"
	"github.com/uyouii/copula-algorithms/model"
)

// FromParameters builds a distribution from a parameter set, the inverse
// of Distribution.Parameters.
func FromParameters(ps model.ParameterSet, opts ...Option) (*Distribution, error) {
	switch ps.Family {
	case NormalCopulaName:
		r, err := correlationParameter(ps, ps.Dimension)
		if err != nil {
			return nil, err
		}
		return NewNormalCopula(r, opts...)

	case IndependentCopulaName:
		return NewIndependentCopula(ps.Dimension, opts...)

	case NormalName:
		r, err := correlationParameter(ps, len(ps.Mean))
		if err != nil {
			return nil, err
		}
		if ps.Dimension != 0 && ps.Dimension != len(ps.Mean) {
			return nil, fmt.Errorf("%s: dimension %d with %d means: %w",
				NormalName, ps.Dimension, len(ps.Mean), common.ErrorInvalidParameter)
		}
		return NewNormal(ps.Mean, ps.Sigma, r, opts...)

	case KernelSmoothingName:
		if ps.Dimension > 1 {
			return nil, fmt.Errorf("%s of dimension %d: %w", KernelSmoothingName, ps.Dimension, common.ErrorInvalidParameter)
		}
		clip := ps.Clip
		if clip == nil && ps.ClipZScore > 0 {
			var err error
			clip, err = kde.ZScoreClip(context.Background(), ps.Sample, ps.Weights, ps.ClipZScore)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", KernelSmoothingName, err)
			}
		}
		return NewKernelSmoothing(ps.Sample, ps.Weights, ps.Bandwidth, clip, opts...)
	}
	return nil, fmt.Errorf("unknown family %q: %w", ps.Family, common.ErrorInvalidParameter)
}

// correlationParameter reads the correlation rows, defaulting to the
// identity of dimension d.
func correlationParameter(ps model.ParameterSet, d int) (*model.CorrelationMatrix, error) {
	if len(ps.Correlation) == 0 {
		if d < 1 {
			return nil, fmt.Errorf("%s without dimension: %w", ps.Family, common.ErrorInvalidParameter)
		}
		return model.NewCorrelationMatrix(d), nil
	}
	r, err := model.NewCorrelationMatrixFromRows(ps.Correlation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ps.Family, err)
	}
	if d != 0 && r.Dimension() != d {
		return nil, fmt.Errorf("%s: correlation of dimension %d, want %d: %w",
			ps.Family, r.Dimension(), d, common.ErrorInvalidParameter)
	}
	return r, nil
}
