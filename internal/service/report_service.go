package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carson-networks/creditwise/internal/logging"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

const defaultLimit = 20

// ListReports returns a page of a user's stored reports, newest first.
func (s *ScoreService) ListReports(ctx context.Context, userID string, cursor *ReportCursor) ([]CreditReport, *ReportCursor, error) {
	if s.reports == nil {
		return nil, nil, ErrReportsDisabled
	}

	limit := defaultLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
	}

	filter := &report.ReportFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}

	rows, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *ReportCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &ReportCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	logData := logging.GetLogData(ctx)

	converted := make([]CreditReport, len(rows))
	for i, row := range rows {
		var doc reportDocument
		var stopTimer func()
		if logData != nil {
			stopTimer = logData.AddToExistingTiming("decodeMs")
		}
		err := json.Unmarshal(row.Payload, &doc)
		if stopTimer != nil {
			stopTimer()
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decoding report %s: %w", row.ID, err)
		}
		converted[i] = CreditReport{
			ID:        row.ID,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
			Result:    doc.Result,
			Summary:   doc.Summary,
			Persisted: true,
		}
	}

	return converted, nextCursor, nil
}
