package scoring

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockCategoryModel struct {
	mock.Mock
}

func (m *mockCategoryModel) PredictCategory(text string, amount float64, frequency int) (Category, float64) {
	args := m.Called(text, amount, frequency)
	return args.Get(0).(Category), args.Get(1).(float64)
}

type fixedCategoryModel struct {
	category   Category
	confidence float64
}

func (f fixedCategoryModel) PredictCategory(string, float64, int) (Category, float64) {
	return f.category, f.confidence
}

type fixedDefaultModel float64

func (f fixedDefaultModel) PredictDefault(float64, float64) float64 {
	return float64(f)
}

func txn(description, amount, date string) Transaction {
	return Transaction{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
	}
}

func classified(description, amount, date string, category Category) ClassifiedTransaction {
	parsed := ParseTransactions([]Transaction{txn(description, amount, date)})[0]
	return ClassifiedTransaction{ParsedTransaction: parsed, Category: category, Confidence: 1}
}
