package backup_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/backup"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

func TestExportImport_RoundTrip(t *testing.T) {
	txs := []finance.Transaction{
		{
			ID:          "t1",
			Amount:      800,
			Category:    "Housing",
			Subcategory: "Rent",
			Date:        finance.NewDate(2025, time.March, 10),
			Description: "Monthly rent",
			Type:        finance.TypeExpense,
			Notes:       "paid early",
		},
		{
			ID:          "t2",
			Amount:      2500,
			Category:    "Income",
			Date:        finance.NewDate(2025, time.March, 15),
			Description: "Monthly salary",
			Type:        finance.TypeIncome,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, txs))

	result, err := backup.Import(&buf)
	require.NoError(t, err)
	require.Empty(t, result.Skipped)
	require.Len(t, result.Params, 2)

	got := result.Params[0]
	assert.Equal(t, "Monthly rent", got.Description)
	assert.Equal(t, "Housing", got.Category)
	assert.Equal(t, "Rent", got.Subcategory)
	assert.Equal(t, finance.TypeExpense, got.Type)
	assert.Equal(t, 800.0, got.Amount)
	assert.Equal(t, "paid early", got.Notes)
	assert.Equal(t, "2025-03-10", got.Date.String())

	assert.Equal(t, finance.TypeIncome, result.Params[1].Type)
}

func TestImport_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"date,description,category,subcategory,type,amount,notes",
		"2025-03-10,Rent,Housing,,expense,800.00,",
		"not-a-date,Broken,Food,,expense,10.00,",
		"2025-03-11,Negative,Food,,expense,-5,",
		"2025-03-12,BadType,Food,,transfer,5,",
		"2025-03-13,,MissingDesc,,expense,5,",
		"2025-03-14,Coffee,Food,,expense,3.50,",
	}, "\n")

	result, err := backup.Import(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Params, 2)
	assert.Equal(t, "Rent", result.Params[0].Description)
	assert.Equal(t, "Coffee", result.Params[1].Description)

	require.Len(t, result.Skipped, 4)
	assert.Equal(t, 3, result.Skipped[0].Line)
}

func TestImport_WithoutHeader(t *testing.T) {
	input := "2025-03-10,Rent,Housing,,expense,800.00,\n"

	result, err := backup.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, result.Skipped)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "Rent", result.Params[0].Description)
}

func TestImport_Windows1252Input(t *testing.T) {
	// "Café" with é encoded as Windows-1252 0xE9.
	row := []byte("2025-03-10,Caf\xe9,Food,,expense,3.50,\n")

	result, err := backup.Import(bytes.NewReader(row))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "Café", result.Params[0].Description)
}
