package scoring

import "math"

const (
	// fallbackProbDefault is used when no default model is loaded.
	fallbackProbDefault = 0.5

	blindSpotThreshold = 0.3
	blindSpotWeight    = 0.25
)

// RiskAssessment is the blended probability of default.
type RiskAssessment struct {
	ModelProbDefault float64 `json:"model_prob_default"`
	BlindSpotPenalty float64 `json:"blind_spot_penalty"`
	PenaltyApplied   bool    `json:"penalty_applied"`
	ProbDefault      float64 `json:"prob_default"`
	Degraded         bool    `json:"degraded"`
}

// Blend combines the default model output with the cash blind-spot penalty.
// A nil model yields the fallback probability of 0.5 with no penalty.
func Blend(fv FeatureVector, model DefaultModel) RiskAssessment {
	ra := RiskAssessment{ModelProbDefault: fallbackProbDefault, Degraded: model == nil}
	if model == nil {
		ra.ProbDefault = fallbackProbDefault
		return ra
	}

	ra.ModelProbDefault = clampUnit(model.PredictDefault(fv.SavingsRate, fv.RiskyRatio))
	ra.ProbDefault = ra.ModelProbDefault
	if fv.CashRatio > blindSpotThreshold {
		ra.PenaltyApplied = true
		ra.ProbDefault = math.Min(1.0, ra.ProbDefault+fv.CashRatio*blindSpotWeight)
		ra.BlindSpotPenalty = ra.ProbDefault - ra.ModelProbDefault
	}

	return ra
}
