package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/scoring"
)

var (
	// ErrNoTransactions is returned for an empty batch.
	ErrNoTransactions = errors.New("at least one transaction is required")
	// ErrReportsDisabled is returned when report history is not configured.
	ErrReportsDisabled = errors.New("report storage is disabled")
)

// ScoreRequest is one batch to score. UserID is optional; when set the
// resulting report is stored for that user.
type ScoreRequest struct {
	UserID       string
	Transactions []scoring.Transaction
}

// CreditReport is a scored batch in the service layer.
type CreditReport struct {
	ID        uuid.UUID
	UserID    string
	CreatedAt time.Time
	Result    *scoring.Report
	Summary   *narrator.Summary
	Persisted bool
}

// ReportCursor identifies a position in a paginated result set.
type ReportCursor struct {
	Position int
	Limit    int
}

// reportDocument is the JSON stored alongside each report row.
type reportDocument struct {
	Result  *scoring.Report   `json:"result"`
	Summary *narrator.Summary `json:"summary,omitempty"`
}
