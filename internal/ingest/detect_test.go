package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankRow(date, amount, desc string) []string {
	return []string{date, amount, "*", "", desc}
}

func TestDetect_EmptyInput(t *testing.T) {
	_, err := Detect(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	// A lone header row has zero data rows.
	_, err = Detect([][]string{{"Date", "Description", "Amount"}})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDetect_Headerless(t *testing.T) {
	layout, err := Detect([][]string{bankRow("08/21/2025", "-200.00", "VENMO PAYMENT")})
	require.NoError(t, err)

	assert.Equal(t, LayoutHeaderless, layout.Kind)
	assert.Equal(t, bankColDate, layout.Columns.Date)
	assert.Equal(t, bankColAmount, layout.Columns.Amount)
	assert.Equal(t, bankColDesc, layout.Columns.Description)
	assert.Equal(t, -1, layout.Columns.Category)
}

func TestDetect_HeaderlessConjunction(t *testing.T) {
	// All four conditions must hold; any single miss falls through to
	// standard handling (and rejects, since no header maps).
	rows := [][]string{
		{"08/21/2025", "-200.00", "*", ""},            // arity 4
		bankRow("2025-08-21", "-200.00", "VENMO"),     // date shape
		bankRow("08/21/2025", "-200.005", "VENMO"),    // amount shape
		bankRow("08/21/2025", "abc", "VENMO"),         // amount not numeric
		bankRow("08/21/2025", "-200.00", "  "),        // empty description
	}
	for _, row := range rows {
		_, err := Detect([][]string{row, bankRow("08/22/2025", "-1.00", "X")})
		assert.Error(t, err, "row %v should not detect as headerless", row)
	}
}

func TestDetect_StandardSynonyms(t *testing.T) {
	layout, err := Detect([][]string{
		{"Posting Date", "Merchant Name", "Transaction Amount", "Category", "City", "Payment-Method"},
		{"2025-08-01", "Coffee Bar", "-4.50", "", "", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, LayoutStandard, layout.Kind)
	assert.Equal(t, 0, layout.Columns.Date)
	assert.Equal(t, 1, layout.Columns.Description)
	assert.Equal(t, 2, layout.Columns.Amount)
	assert.Equal(t, 3, layout.Columns.Category)
	assert.Equal(t, 4, layout.Columns.Location)
	assert.Equal(t, 5, layout.Columns.PaymentMethod)
}

func TestDetect_DateClaimsHeaderBeforeDescription(t *testing.T) {
	// "Transaction Date" contains a description synonym too; date maps
	// first and claims the column.
	layout, err := Detect([][]string{
		{"Transaction Date", "Payee", "Amount"},
		{"2025-08-01", "Coffee Bar", "-4.50"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, layout.Columns.Date)
	assert.Equal(t, 1, layout.Columns.Description)
}

func TestDetect_MissingRequiredColumns(t *testing.T) {
	_, err := Detect([][]string{
		{"Date", "Notes"},
		{"2025-08-01", "something"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "amount")
	assert.NotContains(t, err.Error(), "date,")
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "payment method", normalizeHeader("Payment-Method"))
	assert.Equal(t, "payment method", normalizeHeader("payment_method"))
	assert.Equal(t, "posting date", normalizeHeader("  Posting   Date "))
}
