package scoring

import (
	"strings"

	"github.com/shopspring/decimal"
)

// cashMarkers identify spending that left the ledger as cash. They are matched
// against normalized descriptions, independently of the category.
var cashMarkers = []string{"atm", "cash", "withdrawal"}

// accumulators is the single-pass state behind ExtractFeatures.
type accumulators struct {
	income     decimal.Decimal
	essential  decimal.Decimal
	leisure    decimal.Decimal
	risky      decimal.Decimal
	investment decimal.Decimal
	cash       decimal.Decimal
	months     map[MonthKey]struct{}
}

func (a *accumulators) add(txn ClassifiedTransaction) {
	if txn.MonthKey != nil {
		a.months[*txn.MonthKey] = struct{}{}
	}

	abs := txn.Amount.Abs()
	switch txn.Category {
	case CategoryIncome:
		if txn.Amount.IsPositive() {
			a.income = a.income.Add(txn.Amount)
		}
	case CategoryEssential:
		a.essential = a.essential.Add(abs)
	case CategoryLeisure:
		a.leisure = a.leisure.Add(abs)
	case CategoryRisky:
		a.risky = a.risky.Add(abs)
	case CategoryInvestment:
		a.investment = a.investment.Add(abs)
	}

	if isCashDescription(txn.Description) {
		a.cash = a.cash.Add(abs)
	}
}

func isCashDescription(description string) bool {
	text := NormalizeDescription(description)
	for _, marker := range cashMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ExtractFeatures aggregates classified transactions into a FeatureVector.
func ExtractFeatures(txns []ClassifiedTransaction) FeatureVector {
	acc := accumulators{months: make(map[MonthKey]struct{})}
	for _, txn := range txns {
		acc.add(txn)
	}

	fv := FeatureVector{
		TotalIncome:     acc.income.InexactFloat64(),
		EssentialAmt:    acc.essential.InexactFloat64(),
		LeisureAmt:      acc.leisure.InexactFloat64(),
		RiskyAmt:        acc.risky.InexactFloat64(),
		InvestmentAmt:   acc.investment.InexactFloat64(),
		CashAmt:         acc.cash.InexactFloat64(),
		ValidMonthCount: len(acc.months),
	}
	if fv.ValidMonthCount == 0 {
		fv.ValidMonthCount = 1
	}

	fv.AvgMonthlyIncome = fv.TotalIncome / float64(fv.ValidMonthCount)

	fv.GrossSpend = acc.essential.Add(acc.leisure).Add(acc.risky).InexactFloat64()
	fv.NetSpend = fv.GrossSpend
	if fv.NetSpend < 1 {
		fv.NetSpend = 1
	}

	if fv.TotalIncome > 0 {
		fv.SavingsRate = (fv.TotalIncome - fv.NetSpend) / fv.TotalIncome
		if fv.SavingsRate < 0 {
			fv.SavingsRate = 0
		}
		fv.CashRatio = fv.CashAmt / fv.TotalIncome
	}

	fv.RiskyRatio = fv.RiskyAmt / fv.NetSpend

	return fv
}
