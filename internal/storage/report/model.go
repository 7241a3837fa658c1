package report

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "credit_reports"

// Report is a stored credit report row. Payload holds the JSON document.
type Report struct {
	ID           uuid.UUID `db:"id"`
	UserID       string    `db:"user_id"`
	CreditScore  int       `db:"credit_score"`
	MarketStatus string    `db:"market_status"`
	Payload      []byte    `db:"report"`
	CreatedAt    time.Time `db:"created_at"`
}

// ReportCreate is the input for storing a new report. A zero CreatedAt is
// stored as the current time.
type ReportCreate struct {
	ID           uuid.UUID
	UserID       string
	CreditScore  int
	MarketStatus string
	Payload      []byte
	CreatedAt    time.Time
}

// ReportFilter selects one user's reports, newest first.
type ReportFilter struct {
	UserID string
	Limit  int
	Offset int
}

// IReader defines the read side of report storage.
//
//go:generate mockery --name IReader --output mock_IReader.go
type IReader interface {
	List(ctx context.Context, filter *ReportFilter) ([]*Report, error)
}

// IWriter defines the transactional write side of report storage.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	Insert(ctx context.Context, create *ReportCreate) (uuid.UUID, error)
}
