package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/scoring"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

// -- ListReports tests --

func makeStorageRows(t *testing.T, n int, createdAt time.Time) []*report.Report {
	t.Helper()
	payload, err := json.Marshal(reportDocument{
		Result:  &scoring.Report{CreditScore: 640},
		Summary: &narrator.Summary{Summary: "ok"},
	})
	require.NoError(t, err)

	rows := make([]*report.Report, n)
	for i := range rows {
		rows[i] = &report.Report{
			ID:           uuid.Must(uuid.NewV4()),
			UserID:       "user-1",
			CreditScore:  640,
			MarketStatus: scoring.MarketHighRisk,
			Payload:      payload,
			CreatedAt:    createdAt,
		}
	}
	return rows
}

func TestListReports_NoResults(t *testing.T) {
	svc, deps := newTestService(t)

	deps.reports.On("List", mock.Anything, mock.Anything).Return([]*report.Report{}, nil)

	reports, nextCursor, err := svc.ListReports(context.Background(), "user-1", nil)

	assert.NoError(t, err)
	assert.Nil(t, reports)
	assert.Nil(t, nextCursor)
}

func TestListReports_SinglePage(t *testing.T) {
	svc, deps := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(t, 2, now)

	deps.reports.On("List", mock.Anything, mock.MatchedBy(func(f *report.ReportFilter) bool {
		return f.UserID == "user-1" && f.Limit == defaultLimit && f.Offset == 0
	})).Return(rows, nil)

	reports, nextCursor, err := svc.ListReports(context.Background(), "user-1", nil)

	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Nil(t, nextCursor)

	r := reports[0]
	assert.Equal(t, rows[0].ID, r.ID)
	assert.Equal(t, "user-1", r.UserID)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, 640, r.Result.CreditScore)
	assert.Equal(t, "ok", r.Summary.Summary)
	assert.True(t, r.Persisted)
}

func TestListReports_HasNextPage(t *testing.T) {
	svc, deps := newTestService(t)

	rows := makeStorageRows(t, defaultLimit+1, time.Now())
	deps.reports.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	reports, nextCursor, err := svc.ListReports(context.Background(), "user-1", nil)

	assert.NoError(t, err)
	assert.Len(t, reports, defaultLimit, "truncated to default limit")
	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
}

func TestListReports_WithCursor(t *testing.T) {
	svc, deps := newTestService(t)

	rows := makeStorageRows(t, 3, time.Now())
	deps.reports.On("List", mock.Anything, mock.MatchedBy(func(f *report.ReportFilter) bool {
		return f.Limit == 5 && f.Offset == 10
	})).Return(rows, nil)

	reports, nextCursor, err := svc.ListReports(context.Background(), "user-1", &ReportCursor{Position: 10, Limit: 5})

	assert.NoError(t, err)
	assert.Len(t, reports, 3)
	assert.Nil(t, nextCursor)
}

func TestListReports_StorageError(t *testing.T) {
	svc, deps := newTestService(t)

	deps.reports.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, _, err := svc.ListReports(context.Background(), "user-1", nil)

	assert.EqualError(t, err, "connection refused")
}

func TestListReports_CorruptPayload(t *testing.T) {
	svc, deps := newTestService(t)

	rows := makeStorageRows(t, 1, time.Now())
	rows[0].Payload = []byte("{")
	deps.reports.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	_, _, err := svc.ListReports(context.Background(), "user-1", nil)

	assert.Error(t, err)
}
