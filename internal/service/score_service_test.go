package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/operator/actions"
	"github.com/carson-networks/creditwise/internal/scoring"
)

func sampleTransactions() []scoring.Transaction {
	return []scoring.Transaction{
		{Description: "SALARY", Amount: decimal.RequireFromString("50000"), Date: "2024-01-05"},
		{Description: "RENT-TRANSFER", Amount: decimal.RequireFromString("-15000"), Date: "2024-01-10"},
	}
}

// -- ScoreTransactions tests --

func TestScoreTransactions_EmptyBatch(t *testing.T) {
	svc, _ := newTestService(t)

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{})

	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.Nil(t, report)
}

func TestScoreTransactions_AnonymousIsNotStored(t *testing.T) {
	svc, deps := newTestService(t)
	deps.narrator.On("Enabled").Return(false)

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{Transactions: sampleTransactions()})

	require.NoError(t, err)
	assert.Equal(t, 300, report.Result.CreditScore)
	assert.False(t, report.Persisted)
	assert.Nil(t, report.Summary)
	assert.False(t, report.ID.IsNil())
	deps.processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	deps.narrator.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestScoreTransactions_StoresForUser(t *testing.T) {
	svc, deps := newTestService(t)
	deps.narrator.On("Enabled").Return(true)
	deps.narrator.On("Summarize", mock.Anything, mock.Anything).Return(&narrator.Summary{Summary: "Thin file."}, nil)

	var saved *actions.SaveCreditReport
	deps.processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		s, ok := a.(*actions.SaveCreditReport)
		saved = s
		return ok
	})).Return(nil)

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{
		UserID:       "user-42",
		Transactions: sampleTransactions(),
	})

	require.NoError(t, err)
	assert.True(t, report.Persisted)
	assert.Equal(t, "Thin file.", report.Summary.Summary)

	require.NotNil(t, saved)
	assert.Equal(t, report.ID, saved.ID)
	assert.Equal(t, "user-42", saved.UserID)
	assert.Equal(t, 300, saved.CreditScore)
	assert.Equal(t, scoring.MarketHighRisk, saved.MarketStatus)
	assert.True(t, report.CreatedAt.Equal(saved.CreatedAt), "stored time matches the response")

	var doc reportDocument
	require.NoError(t, json.Unmarshal(saved.Payload, &doc))
	assert.Equal(t, 300, doc.Result.CreditScore)
	assert.Equal(t, "Thin file.", doc.Summary.Summary)
}

func TestScoreTransactions_StorageFailureIsNotFatal(t *testing.T) {
	svc, deps := newTestService(t)
	deps.narrator.On("Enabled").Return(false)
	deps.processor.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{
		UserID:       "user-42",
		Transactions: sampleTransactions(),
	})

	require.NoError(t, err)
	assert.False(t, report.Persisted)
	assert.Equal(t, 300, report.Result.CreditScore)
}

func TestScoreTransactions_SummaryFailureIsNotFatal(t *testing.T) {
	svc, deps := newTestService(t)
	deps.narrator.On("Enabled").Return(true)
	deps.narrator.On("Summarize", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{Transactions: sampleTransactions()})

	require.NoError(t, err)
	assert.Nil(t, report.Summary)
}

func TestScoreTransactions_StorageDisabled(t *testing.T) {
	svc := NewScoreService(Dependencies{
		Pipeline:       scoring.NewPipeline(nil, nil),
		ReportsEnabled: true,
	})

	report, err := svc.ScoreTransactions(context.Background(), ScoreRequest{
		UserID:       "user-42",
		Transactions: sampleTransactions(),
	})

	require.NoError(t, err)
	assert.False(t, report.Persisted)

	_, _, err = svc.ListReports(context.Background(), "user-42", nil)
	assert.ErrorIs(t, err, ErrReportsDisabled)
}
