package scoring

import "github.com/shopspring/decimal"

const (
	DriverRiskySpending = "Risky Spending"
	DriverCashOpacity   = "Cash Opacity"
	DriverLowSavings    = "Low Savings"
	DriverDisciplined   = "Disciplined Behavior"

	MarketExcellent = "Excellent"
	MarketGood      = "Good"
	MarketHighRisk  = "High Risk"

	AlertHigh   = "High"
	AlertNormal = "Normal"

	RiskHigh     = "High"
	RiskModerate = "Moderate"
	RiskLow      = "Low"
)

// CategoryBreakdown is the monetary total and transaction count of one category.
type CategoryBreakdown struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Insights are presentational diagnostics; nothing here feeds back into the score.
type Insights struct {
	PrimaryDriver     string                         `json:"primary_driver"`
	MarketStatus      string                         `json:"market_status"`
	CashUsageAlert    string                         `json:"cash_usage_alert"`
	RiskStatus        string                         `json:"risk_status"`
	Breakdown         map[Category]CategoryBreakdown `json:"breakdown"`
	MeanConfidence    float64                        `json:"mean_confidence"`
	TransparencyIndex float64                        `json:"transparency_index"`
	StabilityApplied  bool                           `json:"stability_applied"`
}

// GenerateInsights derives the human readable diagnostics of a scored batch.
func GenerateInsights(fv FeatureVector, risk RiskAssessment, score ScoreBreakdown, txns []ClassifiedTransaction) Insights {
	return Insights{
		PrimaryDriver:     primaryDriver(fv),
		MarketStatus:      marketStatus(score.FinalScore),
		CashUsageAlert:    cashUsageAlert(fv.CashRatio),
		RiskStatus:        riskStatus(risk.ProbDefault),
		Breakdown:         categoryBreakdown(txns),
		MeanConfidence:    meanConfidence(txns),
		TransparencyIndex: (1 - fv.CashRatio) * 100,
		StabilityApplied:  score.BonusApplied(),
	}
}

func primaryDriver(fv FeatureVector) string {
	switch {
	case fv.RiskyRatio > 0.1:
		return DriverRiskySpending
	case fv.CashRatio > 0.3:
		return DriverCashOpacity
	case fv.SavingsRate < 0.15:
		return DriverLowSavings
	default:
		return DriverDisciplined
	}
}

func marketStatus(score int) string {
	switch {
	case score > 750:
		return MarketExcellent
	case score > 650:
		return MarketGood
	default:
		return MarketHighRisk
	}
}

func cashUsageAlert(cashRatio float64) string {
	if cashRatio > 0.4 {
		return AlertHigh
	}
	return AlertNormal
}

func riskStatus(probDefault float64) string {
	switch {
	case probDefault > 0.6:
		return RiskHigh
	case probDefault > 0.3:
		return RiskModerate
	default:
		return RiskLow
	}
}

// categoryBreakdown totals absolute amounts per category. Income only counts
// inflows, matching the income total of the feature vector.
func categoryBreakdown(txns []ClassifiedTransaction) map[Category]CategoryBreakdown {
	breakdown := make(map[Category]CategoryBreakdown, len(Categories))
	for _, c := range Categories {
		breakdown[c] = CategoryBreakdown{Total: decimal.Zero}
	}

	for _, txn := range txns {
		entry := breakdown[txn.Category]
		entry.Count++
		if txn.Category != CategoryIncome {
			entry.Total = entry.Total.Add(txn.Amount.Abs())
		} else if txn.Amount.IsPositive() {
			entry.Total = entry.Total.Add(txn.Amount)
		}
		breakdown[txn.Category] = entry
	}
	return breakdown
}

func meanConfidence(txns []ClassifiedTransaction) float64 {
	if len(txns) == 0 {
		return 0
	}
	var sum float64
	for _, txn := range txns {
		sum += txn.Confidence
	}
	return sum / float64(len(txns))
}
