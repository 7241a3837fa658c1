package scoring

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dayFirstLayouts cover numeric bank statement dates. Single-digit day and
// month fields also accept two digits.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
}

// ParseDate resolves a raw date string. Strict ISO dates are parsed literally,
// anything else is parsed day-first. The second return is false when the
// string cannot be understood.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if isoDatePattern.MatchString(raw) {
		t, err := time.Parse(isoLayout, raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	t, err := dateparse.ParseIn(raw, time.UTC,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTransactions attaches calendar dates and month keys, preserving order.
func ParseTransactions(txns []Transaction) []ParsedTransaction {
	parsed := make([]ParsedTransaction, len(txns))
	for i, txn := range txns {
		parsed[i] = ParsedTransaction{Transaction: txn}

		date, ok := ParseDate(txn.Date)
		if !ok {
			continue
		}
		parsed[i].CalendarDate = &date
		parsed[i].MonthKey = &MonthKey{Year: date.Year(), Month: date.Month()}
	}
	return parsed
}
