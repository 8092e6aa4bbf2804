package review

import "github.com/vytor/wordflow/internal/models"

// SelectStrategy picks the strategy for a word's first review.
func SelectStrategy(level models.Level, isLongDifficult bool) models.StrategyID {
	switch {
	case level == 0 && isLongDifficult:
		return models.StrategyDense
	case level == 0 && !isLongDifficult:
		return models.StrategyNormal
	case (level == 1 || level == 2) && isLongDifficult:
		return models.StrategyNormal
	case level == 3 && isLongDifficult:
		return models.StrategySparse
	default:
		return models.StrategyNormal
	}
}

// Downgrade moves a strategy one step toward sparser reviews. Sparse stays Sparse.
func Downgrade(id models.StrategyID) models.StrategyID {
	switch id {
	case models.StrategyDense:
		return models.StrategyNormal
	case models.StrategyNormal:
		return models.StrategySparse
	default:
		return id
	}
}
