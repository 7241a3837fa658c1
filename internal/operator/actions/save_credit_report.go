package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/creditwise/internal/storage"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

// SaveCreditReport stores one scored report for a user.
type SaveCreditReport struct {
	ID           uuid.UUID
	UserID       string
	CreditScore  int
	MarketStatus string
	Payload      []byte
	CreatedAt    time.Time

	IAction
}

func (s *SaveCreditReport) Perform(ctx context.Context, writer *storage.Writer) error {
	_, err := writer.Reports.Insert(ctx, &report.ReportCreate{
		ID:           s.ID,
		UserID:       s.UserID,
		CreditScore:  s.CreditScore,
		MarketStatus: s.MarketStatus,
		Payload:      s.Payload,
		CreatedAt:    s.CreatedAt,
	})
	return err
}
