package scoring

import "math"

const (
	MinScore = 300
	MaxScore = 900

	rawScoreBase  = 350.0
	rawScoreRange = 530.0

	noIncomeMultiplier = 0.45
	baseMultiplierBias = 0.45
	incomeLogDivisor   = 11.0
	maxMultiplier      = 1.1

	stabilityBonusValue = 0.06
	bonusMinSavingsRate = 0.4
	bonusMaxCashRatio   = 0.2
)

// ScoreBreakdown records every step that leads to the final score.
type ScoreBreakdown struct {
	RawScore           float64 `json:"raw_score"`
	BaseMultiplier     float64 `json:"base_multiplier"`
	StabilityBonus     float64 `json:"stability_bonus"`
	CapacityMultiplier float64 `json:"capacity_multiplier"`
	FinalScore         int     `json:"final_score"`
}

// BonusApplied reports whether the stability bonus contributed.
func (s ScoreBreakdown) BonusApplied() bool {
	return s.StabilityBonus > 0
}

// Normalize maps a probability of default onto the bounded score.
func Normalize(probDefault float64, fv FeatureVector) ScoreBreakdown {
	sb := ScoreBreakdown{
		RawScore:           rawScoreBase + (1-probDefault)*rawScoreRange,
		BaseMultiplier:     noIncomeMultiplier,
		CapacityMultiplier: noIncomeMultiplier,
	}

	if fv.AvgMonthlyIncome > 0 {
		sb.BaseMultiplier = baseMultiplierBias + math.Log10(fv.AvgMonthlyIncome)/incomeLogDivisor
		sb.StabilityBonus = stabilityBonus(fv)
		sb.CapacityMultiplier = math.Min(sb.BaseMultiplier+sb.StabilityBonus, maxMultiplier)
	}

	sb.FinalScore = clampScore(int(math.Floor(sb.RawScore * sb.CapacityMultiplier)))
	return sb
}

// stabilityBonus needs zero risky spend, high savings and low cash usage together.
func stabilityBonus(fv FeatureVector) float64 {
	if fv.RiskyRatio == 0 && fv.SavingsRate > bonusMinSavingsRate && fv.CashRatio < bonusMaxCashRatio {
		return stabilityBonusValue
	}
	return 0
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
