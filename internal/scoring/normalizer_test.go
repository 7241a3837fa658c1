package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_NoIncome(t *testing.T) {
	sb := Normalize(0.5, FeatureVector{SavingsRate: 0.9})

	assert.Equal(t, 615.0, sb.RawScore)
	assert.Equal(t, 0.45, sb.CapacityMultiplier)
	assert.Equal(t, 0.0, sb.StabilityBonus)
	assert.False(t, sb.BonusApplied())
	assert.Equal(t, MinScore, sb.FinalScore, "floor(615*0.45)=276 clamps up")
}

func TestNormalize_IncomeScaledMultiplier(t *testing.T) {
	fv := FeatureVector{AvgMonthlyIncome: 100000, SavingsRate: 0.3, RiskyRatio: 0.05}
	sb := Normalize(0.1, fv)

	base := 0.45 + 5.0/11
	assert.InDelta(t, 350+0.9*530, sb.RawScore, 1e-9)
	assert.InDelta(t, base, sb.BaseMultiplier, 1e-12)
	assert.InDelta(t, base, sb.CapacityMultiplier, 1e-12)
	assert.Equal(t, int(math.Floor(sb.RawScore*sb.CapacityMultiplier)), sb.FinalScore)
}

func TestNormalize_MultiplierCapped(t *testing.T) {
	fv := FeatureVector{AvgMonthlyIncome: 1e9, SavingsRate: 0.8}
	sb := Normalize(0, fv)

	assert.Equal(t, 1.1, sb.CapacityMultiplier)
	assert.Equal(t, MaxScore, sb.FinalScore, "floor(880*1.1)=968 clamps down")
}

func TestNormalize_StabilityBonusNeedsAllConditions(t *testing.T) {
	eligible := FeatureVector{AvgMonthlyIncome: 50000, SavingsRate: 0.5, RiskyRatio: 0, CashRatio: 0.1}

	tests := []struct {
		name   string
		mutate func(*FeatureVector)
		bonus  float64
	}{
		{"all conditions", func(*FeatureVector) {}, 0.06},
		{"risky spend present", func(fv *FeatureVector) { fv.RiskyRatio = 0.01 }, 0},
		{"savings at threshold", func(fv *FeatureVector) { fv.SavingsRate = 0.4 }, 0},
		{"cash at threshold", func(fv *FeatureVector) { fv.CashRatio = 0.2 }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := eligible
			tt.mutate(&fv)

			sb := Normalize(0.2, fv)
			assert.Equal(t, tt.bonus, sb.StabilityBonus)
			assert.InDelta(t, sb.BaseMultiplier+tt.bonus, sb.CapacityMultiplier, 1e-12)
		})
	}
}

func TestNormalize_ClampInvariant(t *testing.T) {
	incomes := []float64{0, 0.5, 1, 10, 1000, 1e5, 1e7, 1e12}
	probs := []float64{0, 0.25, 0.5, 0.75, 1}

	for _, income := range incomes {
		for _, p := range probs {
			sb := Normalize(p, FeatureVector{AvgMonthlyIncome: income, SavingsRate: 0.9})
			assert.GreaterOrEqual(t, sb.FinalScore, MinScore)
			assert.LessOrEqual(t, sb.FinalScore, MaxScore)
		}
	}
}
