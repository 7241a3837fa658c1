package report

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const defaultLimit = 20

var _ IReader = (*Reader)(nil)

var columns = []any{
	psql.Quote("id"),
	psql.Quote("user_id"),
	psql.Quote("credit_score"),
	psql.Quote("market_status"),
	psql.Quote("report"),
	psql.Quote("created_at"),
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns up to filter.Limit+1 reports so callers can tell whether
// another page exists.
func (r *Reader) List(ctx context.Context, filter *ReportFilter) ([]*Report, error) {
	limit := defaultLimit
	offset := 0
	userID := ""
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
		userID = filter.UserID
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(psql.Quote(tableName)),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
		sm.Limit(limit + 1),
		sm.Offset(offset),
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Report]())
	if err != nil {
		return nil, err
	}

	result := make([]*Report, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
