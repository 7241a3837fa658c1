package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/creditwise/internal/scoring"
)

var csvColumns = []string{"date", "description", "amount"}

func readTransactionsFile(path string) ([]scoring.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading transactions file")
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return parseCSV(bytes.NewReader(data))
	}
	return parseJSON(data)
}

// parseJSON accepts a bare array or an object with a "transactions" array.
func parseJSON(data []byte) ([]scoring.Transaction, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var txns []scoring.Transaction
		if err := json.Unmarshal(trimmed, &txns); err != nil {
			return nil, errors.Wrap(err, "decoding transactions")
		}
		return txns, nil
	}

	var doc struct {
		Transactions []scoring.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding transactions")
	}
	return doc.Transactions, nil
}

// parseCSV reads a file with a header row naming the date, description and
// amount columns in any order. Other columns are ignored.
func parseCSV(r io.Reader) ([]scoring.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	index := make(map[string]int, len(csvColumns))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header is missing the %q column", col)
		}
	}

	var txns []scoring.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading csv line %d", line)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		amount, err := decimal.NewFromString(field("amount"))
		if err != nil {
			return nil, errors.Wrapf(err, "csv line %d: invalid amount", line)
		}
		txns = append(txns, scoring.Transaction{
			Description: field("description"),
			Amount:      amount,
			Date:        field("date"),
		})
	}
	return txns, nil
}
