// Package backup moves the transaction history in and out of CSV files.
package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/encoding"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
)

var header = []string{"date", "description", "category", "subcategory", "type", "amount", "notes"}

// Export writes the transactions as CSV.
func Export(w io.Writer, txs []finance.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.String(),
			tx.Description,
			tx.Category,
			tx.Subcategory,
			string(tx.Type),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ExportFile writes the transactions to a CSV file at path.
func ExportFile(path string, txs []finance.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return Export(f, txs)
}

// RowError reports a row that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result carries the importable rows and the rows that were rejected.
type Result struct {
	Params  []store.CreateTransactionParams
	Skipped []RowError
}

// Import parses a CSV of transactions. Input of unknown charset is
// normalized to UTF-8 first. Malformed rows are collected in Skipped
// rather than aborting the whole import.
func Import(r io.Reader) (*Result, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("normalizing input: %w", err)
	}

	cr := csv.NewReader(utf8r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	result := &Result{}
	line := 0

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}

		if line == 1 && isHeader(record) {
			continue
		}

		params, err := parseRow(record)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}

		result.Params = append(result.Params, params)
	}

	return result, nil
}

// ImportFile parses the CSV file at path.
func ImportFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	return Import(f)
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

func parseRow(record []string) (store.CreateTransactionParams, error) {
	var p store.CreateTransactionParams

	if len(record) < 6 {
		return p, fmt.Errorf("expected at least 6 fields, got %d", len(record))
	}

	date, err := finance.ParseDate(strings.TrimSpace(record[0]))
	if err != nil {
		return p, fmt.Errorf("invalid date %q", record[0])
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
	if err != nil || amount < 0 {
		return p, fmt.Errorf("invalid amount %q", record[5])
	}

	txType := finance.Type(strings.ToLower(strings.TrimSpace(record[4])))
	if txType != finance.TypeIncome && txType != finance.TypeExpense {
		return p, fmt.Errorf("invalid type %q", record[4])
	}

	p = store.CreateTransactionParams{
		Date:        date,
		Description: strings.TrimSpace(record[1]),
		Category:    strings.TrimSpace(record[2]),
		Subcategory: strings.TrimSpace(record[3]),
		Type:        txType,
		Amount:      amount,
	}

	if len(record) > 6 {
		p.Notes = strings.TrimSpace(record[6])
	}

	if p.Description == "" || p.Category == "" {
		return p, fmt.Errorf("description and category are required")
	}

	return p, nil
}
