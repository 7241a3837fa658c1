package main

import (
	"encoding/json"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/carson-networks/creditwise/internal/scoring"
)

type scorecard struct {
	CreditScore          int                   `json:"credit_score" yaml:"credit_score"`
	MarketStatus         string                `json:"market_status" yaml:"market_status"`
	RiskStatus           string                `json:"risk_status" yaml:"risk_status"`
	PrimaryDriver        string                `json:"primary_driver" yaml:"primary_driver"`
	CashUsageAlert       string                `json:"cash_usage_alert" yaml:"cash_usage_alert"`
	ProbabilityOfDefault float64               `json:"probability_of_default" yaml:"probability_of_default"`
	SavingsRate          float64               `json:"savings_rate" yaml:"savings_rate"`
	StabilityBonus       bool                  `json:"stability_bonus" yaml:"stability_bonus"`
	Degraded             scoring.DegradedState `json:"degraded" yaml:"degraded"`
	Categories           map[string]int        `json:"categories" yaml:"categories"`
	Transactions         []scoredTransaction   `json:"transactions" yaml:"transactions"`
}

type scoredTransaction struct {
	Date        string  `json:"date" yaml:"date"`
	Description string  `json:"description" yaml:"description"`
	Amount      string  `json:"amount" yaml:"amount"`
	Category    string  `json:"category" yaml:"category"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func newScorecard(r *scoring.Report) scorecard {
	card := scorecard{
		CreditScore:          r.CreditScore,
		MarketStatus:         r.Insights.MarketStatus,
		RiskStatus:           r.Insights.RiskStatus,
		PrimaryDriver:        r.Insights.PrimaryDriver,
		CashUsageAlert:       r.Insights.CashUsageAlert,
		ProbabilityOfDefault: round4(r.Risk.ProbDefault),
		SavingsRate:          round4(r.Features.SavingsRate),
		StabilityBonus:       r.Insights.StabilityApplied,
		Degraded:             r.Degraded,
		Categories:           make(map[string]int, len(r.Insights.Breakdown)),
		Transactions:         make([]scoredTransaction, len(r.Transactions)),
	}

	for category, entry := range r.Insights.Breakdown {
		card.Categories[string(category)] = entry.Count
	}
	for i, txn := range r.Transactions {
		card.Transactions[i] = scoredTransaction{
			Date:        txn.Date,
			Description: txn.Description,
			Amount:      txn.Amount.String(),
			Category:    string(txn.Category),
			Confidence:  round4(txn.Confidence),
		}
	}
	return card
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
