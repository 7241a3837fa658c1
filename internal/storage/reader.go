package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/creditwise/internal/storage/report"
)

type Reader struct {
	Reports *report.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Reports: report.NewReader(exec),
	}
}
