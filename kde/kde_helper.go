package kde

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/copula-algorithms/common"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// ZScoreClip returns the clip keeping observations within zScore standard
// deviations of the weighted mean. A non-positive zScore uses ClipZScore.
func ZScoreClip(ctx context.Context, values []float64, weights []float64, zScore float64) (*model.Clip, error) {
	logger := utils.GetLogger(ctx)

	if len(values) < MinClipPointCnt {
		logger.Debug("point too little, skip clip", zap.Int("cnt", len(values)))
		return nil, fmt.Errorf("%d observations, need %d to clip: %w",
			len(values), MinClipPointCnt, common.ErrorInvalidParameter)
	}
	if len(weights) == 0 {
		weights = nil
	} else if len(weights) != len(values) {
		return nil, fmt.Errorf("%d weights for %d observations: %w",
			len(weights), len(values), common.ErrorInvalidParameter)
	}
	if zScore <= 0 {
		zScore = ClipZScore
	}

	mean, stddev := stat.MeanStdDev(values, weights)
	if math.IsNaN(stddev) {
		return nil, fmt.Errorf("clip standard deviation: %w", common.ErrorInvalidParameter)
	}
	clip := &model.Clip{
		Lower: mean - stddev*zScore,
		Upper: mean + stddev*zScore,
	}
	logger.Debug("kde clip", zap.Float64("mean", mean), zap.Float64("stddev", stddev),
		zap.Float64("lower", clip.Lower), zap.Float64("upper", clip.Upper))
	return clip, nil
}
