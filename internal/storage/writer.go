package storage

import (
	"context"

	"github.com/carson-networks/creditwise/internal/storage/report"
)

// Tx finishes the database transaction behind a Writer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type txFinisher struct {
	commit   func(context.Context) error
	rollback func(context.Context) error
}

func (t txFinisher) Commit(ctx context.Context) error   { return t.commit(ctx) }
func (t txFinisher) Rollback(ctx context.Context) error { return t.rollback(ctx) }

type Writer struct {
	tx      Tx
	Reports report.IWriter
}

func NewWriter(tx Tx, reports report.IWriter) *Writer {
	return &Writer{
		tx:      tx,
		Reports: reports,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
