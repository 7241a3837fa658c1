package score

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/service"
)

// CreditReport is the API response model for a scored batch.
// It is used only for responses, not for request bodies.
type CreditReport struct {
	ReportID            string              `json:"report_id" doc:"Report UUID"`
	CreatedAt           string              `json:"created_at" doc:"RFC3339 scoring time"`
	Stored              bool                `json:"stored" doc:"Whether the report was added to the user's history"`
	CreditScore         int                 `json:"credit_score" minimum:"300" maximum:"900" doc:"Final credit score"`
	BehavioralInsights  BehavioralInsights  `json:"behavioral_insights"`
	MLEngineDiagnostics MLEngineDiagnostics `json:"ml_engine_diagnostics"`
	MarketAnalysis      MarketAnalysis      `json:"market_analysis"`
	AISummary           *AISummary          `json:"ai_summary,omitempty" doc:"Plain language summary, absent when disabled or unavailable"`
	ParsedTransactions  []ParsedTransaction `json:"parsed_transactions" doc:"Input transactions with their resolved category"`
}

type BehavioralInsights struct {
	FinancialHealthMetrics FinancialHealthMetrics        `json:"financial_health_metrics"`
	SpendingBreakdown      SpendingBreakdown             `json:"spending_breakdown"`
	AIVerdict              AIVerdict                     `json:"ai_verdict"`
	CategoryDistribution   map[string]CategoryStatistics `json:"category_distribution" doc:"Monetary total and count per category"`
}

type FinancialHealthMetrics struct {
	MonthlyIncomeAvg  float64 `json:"monthly_income_avg" doc:"Average income per month with a valid date"`
	SavingsRate       float64 `json:"savings_rate" doc:"Savings rate in percent"`
	TransparencyIndex float64 `json:"transparency_index" doc:"Share of income not withdrawn as cash, in percent"`
	ValidMonths       int     `json:"valid_months" doc:"Distinct months with a parseable date"`
}

type SpendingBreakdown struct {
	TotalIncome     string `json:"total_income" doc:"Decimal amount"`
	TotalEssential  string `json:"total_essential" doc:"Decimal amount"`
	TotalInvestment string `json:"total_investment" doc:"Decimal amount"`
	TotalLeisure    string `json:"total_leisure" doc:"Decimal amount"`
	TotalRisky      string `json:"total_risky" doc:"Decimal amount"`
	TotalCash       string `json:"total_cash" doc:"Decimal amount withdrawn as cash"`
}

type AIVerdict struct {
	PrimaryImpactFactor string `json:"primary_impact_factor"`
	RiskStatus          string `json:"risk_status" enum:"High,Moderate,Low"`
	StabilityBonus      bool   `json:"stability_bonus"`
}

type CategoryStatistics struct {
	Total string `json:"total" doc:"Decimal amount"`
	Count int    `json:"count"`
}

type MLEngineDiagnostics struct {
	ProbabilityOfDefault        float64 `json:"probability_of_default" doc:"Blended probability of default in percent"`
	BlindSpotPenalty            float64 `json:"blind_spot_penalty" doc:"Cash penalty added to the probability of default, in percent"`
	NLPClassificationConfidence float64 `json:"nlp_classification_confidence" doc:"Mean classifier confidence in percent"`
	CapacityMultiplierUsed      float64 `json:"capacity_multiplier_used"`
	RawScore                    float64 `json:"raw_score"`
	DegradedMode                bool    `json:"degraded_mode" doc:"True when either trained model was unavailable"`
	CategoryModelLoaded         bool    `json:"category_model_loaded"`
	DefaultModelLoaded          bool    `json:"default_model_loaded"`
}

type MarketAnalysis struct {
	Status                 string `json:"status" enum:"Excellent,Good,High Risk"`
	CashUsageAlert         string `json:"cash_usage_alert" enum:"High,Normal"`
	DisciplineBonusApplied bool   `json:"discipline_bonus_applied"`
}

type AISummary struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths,omitempty"`
	Weaknesses   []string `json:"weaknesses,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
}

type ParsedTransaction struct {
	Description string  `json:"description"`
	Amount      string  `json:"amount" doc:"Decimal amount"`
	Date        string  `json:"date" doc:"Date as supplied"`
	ParsedDate  string  `json:"parsed_date,omitempty" doc:"ISO date, absent when unparseable"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
}

func percent(ratio float64) float64 {
	return math.Round(ratio*10000) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func toCreditReport(r service.CreditReport) CreditReport {
	res := r.Result
	fv := res.Features
	breakdown := res.Insights.Breakdown

	distribution := make(map[string]CategoryStatistics, len(breakdown))
	for category, entry := range breakdown {
		distribution[string(category)] = CategoryStatistics{Total: entry.Total.String(), Count: entry.Count}
	}

	parsed := make([]ParsedTransaction, len(res.Transactions))
	for i, txn := range res.Transactions {
		parsed[i] = ParsedTransaction{
			Description: txn.Description,
			Amount:      txn.Amount.String(),
			Date:        txn.Date,
			Category:    string(txn.Category),
			Confidence:  round2(txn.Confidence),
		}
		if txn.CalendarDate != nil {
			parsed[i].ParsedDate = txn.CalendarDate.Format("2006-01-02")
		}
	}

	out := CreditReport{
		ReportID:    r.ID.String(),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		Stored:      r.Persisted,
		CreditScore: res.CreditScore,
		BehavioralInsights: BehavioralInsights{
			FinancialHealthMetrics: FinancialHealthMetrics{
				MonthlyIncomeAvg:  round2(fv.AvgMonthlyIncome),
				SavingsRate:       percent(fv.SavingsRate),
				TransparencyIndex: round2(res.Insights.TransparencyIndex),
				ValidMonths:       fv.ValidMonthCount,
			},
			SpendingBreakdown: SpendingBreakdown{
				TotalIncome:     breakdown[scoring.CategoryIncome].Total.String(),
				TotalEssential:  breakdown[scoring.CategoryEssential].Total.String(),
				TotalInvestment: breakdown[scoring.CategoryInvestment].Total.String(),
				TotalLeisure:    breakdown[scoring.CategoryLeisure].Total.String(),
				TotalRisky:      breakdown[scoring.CategoryRisky].Total.String(),
				TotalCash:       formatAmount(fv.CashAmt),
			},
			AIVerdict: AIVerdict{
				PrimaryImpactFactor: res.Insights.PrimaryDriver,
				RiskStatus:          res.Insights.RiskStatus,
				StabilityBonus:      res.Insights.StabilityApplied,
			},
			CategoryDistribution: distribution,
		},
		MLEngineDiagnostics: MLEngineDiagnostics{
			ProbabilityOfDefault:        percent(res.Risk.ProbDefault),
			BlindSpotPenalty:            percent(res.Risk.BlindSpotPenalty),
			NLPClassificationConfidence: percent(res.Insights.MeanConfidence),
			CapacityMultiplierUsed:      math.Round(res.Score.CapacityMultiplier*10000) / 10000,
			RawScore:                    round2(res.Score.RawScore),
			DegradedMode:                res.Degraded.CategoryModel || res.Degraded.DefaultModel,
			CategoryModelLoaded:         !res.Degraded.CategoryModel,
			DefaultModelLoaded:          !res.Degraded.DefaultModel,
		},
		MarketAnalysis: MarketAnalysis{
			Status:                 res.Insights.MarketStatus,
			CashUsageAlert:         res.Insights.CashUsageAlert,
			DisciplineBonusApplied: res.Score.BonusApplied(),
		},
		ParsedTransactions: parsed,
	}

	if r.Summary != nil {
		out.AISummary = &AISummary{
			Summary:      r.Summary.Summary,
			Strengths:    r.Summary.Strengths,
			Weaknesses:   r.Summary.Weaknesses,
			Improvements: r.Summary.Improvements,
		}
	}

	return out
}
