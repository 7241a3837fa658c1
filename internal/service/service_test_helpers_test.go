package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/operator/actions"
	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

type mockReportReader struct {
	mock.Mock
}

func (m *mockReportReader) List(ctx context.Context, filter *report.ReportFilter) ([]*report.Report, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*report.Report)
	return rows, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *mockSummarizer) Summarize(ctx context.Context, r *scoring.Report) (*narrator.Summary, error) {
	args := m.Called(ctx, r)
	s, _ := args.Get(0).(*narrator.Summary)
	return s, args.Error(1)
}

type testDeps struct {
	reports   *mockReportReader
	processor *mockProcessor
	narrator  *mockSummarizer
}

func newTestService(t *testing.T) (*ScoreService, testDeps) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	deps := testDeps{
		reports:   new(mockReportReader),
		processor: new(mockProcessor),
		narrator:  new(mockSummarizer),
	}
	svc := NewScoreService(Dependencies{
		Pipeline:       scoring.NewPipeline(nil, nil, scoring.WithLogger(logger)),
		Reports:        deps.reports,
		Operator:       deps.processor,
		Narrator:       deps.narrator,
		ReportsEnabled: true,
		Logger:         logger,
	})
	return svc, deps
}
