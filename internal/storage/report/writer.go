package report

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	exec bob.Executor
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{exec: exec}
}

// Insert stores a report. A nil ID is replaced by a fresh one.
func (w *Writer) Insert(ctx context.Context, create *ReportCreate) (uuid.UUID, error) {
	id := create.ID
	if id == uuid.Nil {
		var err error
		if id, err = uuid.NewV4(); err != nil {
			return uuid.Nil, err
		}
	}

	createdAt := create.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := psql.Insert(
		im.Into(psql.Quote(tableName), "id", "user_id", "credit_score", "market_status", "report", "created_at"),
		im.Values(psql.Arg(id, create.UserID, create.CreditScore, create.MarketStatus, string(create.Payload), createdAt.UTC())),
	)

	if _, err := bob.Exec(ctx, w.exec, query); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
