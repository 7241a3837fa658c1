package scoring

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the closed set of labels a transaction can be classified into.
type Category string

const (
	CategoryIncome     Category = "Income"
	CategoryEssential  Category = "Essential"
	CategoryLeisure    Category = "Leisure"
	CategoryRisky      Category = "Risky"
	CategoryInvestment Category = "Investment"
	CategoryOther      Category = "Other"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryIncome,
	CategoryEssential,
	CategoryLeisure,
	CategoryRisky,
	CategoryInvestment,
	CategoryOther,
}

// ParseCategory maps a label onto a Category, rejecting anything outside the enumeration.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Transaction is a single input record. Negative amounts are outflows.
type Transaction struct {
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Date        string          `json:"date" yaml:"date"`
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ParsedTransaction is a Transaction with its date resolved. CalendarDate and
// MonthKey are nil when the raw date could not be parsed.
type ParsedTransaction struct {
	Transaction
	CalendarDate *time.Time `json:"calendar_date,omitempty"`
	MonthKey     *MonthKey  `json:"month_key,omitempty"`
}

// ClassifiedTransaction carries the category assigned to a transaction.
type ClassifiedTransaction struct {
	ParsedTransaction
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// FeatureVector holds the behavioural aggregates of one batch.
type FeatureVector struct {
	TotalIncome      float64 `json:"total_income"`
	AvgMonthlyIncome float64 `json:"avg_monthly_income"`
	GrossSpend       float64 `json:"gross_spend"`
	NetSpend         float64 `json:"net_spend"`
	SavingsRate      float64 `json:"savings_rate"`
	RiskyRatio       float64 `json:"risky_ratio"`
	CashAmt          float64 `json:"cash_amt"`
	CashRatio        float64 `json:"cash_ratio"`
	EssentialAmt     float64 `json:"essential_amt"`
	LeisureAmt       float64 `json:"leisure_amt"`
	InvestmentAmt    float64 `json:"investment_amt"`
	RiskyAmt         float64 `json:"risky_amt"`
	ValidMonthCount  int     `json:"valid_month_count"`
}

// CategoryModel predicts a category for a single transaction.
type CategoryModel interface {
	PredictCategory(text string, amount float64, frequency int) (Category, float64)
}

// DefaultModel estimates the probability of default from savings and risk.
type DefaultModel interface {
	PredictDefault(savingsRate, riskyRatio float64) float64
}
