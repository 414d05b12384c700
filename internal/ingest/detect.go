package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// LayoutKind tags which input shape the detector recognized.
type LayoutKind int

const (
	// LayoutStandard is a CSV with a header row naming the columns.
	LayoutStandard LayoutKind = iota
	// LayoutHeaderless is the fixed 5-column bank export with no header.
	LayoutHeaderless
)

// ColumnMapping resolves logical fields to source column indices.
// -1 means the field has no source column.
type ColumnMapping struct {
	Date          int
	Description   int
	Amount        int
	Category      int
	Location      int
	PaymentMethod int
}

// Layout is the detector's result: which shape the file has, and where
// each logical field lives.
type Layout struct {
	Kind    LayoutKind
	Columns ColumnMapping
}

// ErrEmptyFile is returned for input with zero data rows.
var ErrEmptyFile = errors.New("no data rows in input")

// Headerless bank export positions: date, amount, flag(unused),
// unused, description.
const (
	bankColDate   = 0
	bankColAmount = 1
	bankColDesc   = 4
	bankNumFields = 5
)

var (
	bankDateRe   = regexp.MustCompile(`^"?\d{2}/\d{2}/\d{4}"?$`)
	bankAmountRe = regexp.MustCompile(`^"?-?\d+\.\d{2}"?$`)
)

// headerSynonyms maps each logical field to header substrings, scanned in
// this order so that e.g. a "Transaction Date" header is claimed by date
// before description can match its "transaction".
var headerSynonyms = []struct {
	field    string
	names    []string
	required bool
}{
	{"date", []string{"date", "posted"}, true},
	{"description", []string{"description", "merchant", "payee", "transaction", "memo", "details"}, true},
	{"amount", []string{"amount", "value", "debit"}, true},
	{"category", []string{"category"}, false},
	{"location", []string{"location", "place", "city"}, false},
	{"payment_method", []string{"payment method", "method", "pay type"}, false},
}

// Detect decides the input layout from the parsed rows. The headerless
// check is a strict conjunction: arity, date shape, amount shape, and a
// non-empty description must all hold, or the file is treated as a
// standard header CSV.
func Detect(records [][]string) (Layout, error) {
	if len(records) == 0 {
		return Layout{}, ErrEmptyFile
	}

	if isHeaderlessRow(records[0]) {
		return Layout{
			Kind: LayoutHeaderless,
			Columns: ColumnMapping{
				Date:          bankColDate,
				Amount:        bankColAmount,
				Description:   bankColDesc,
				Category:      -1,
				Location:      -1,
				PaymentMethod: -1,
			},
		}, nil
	}

	if len(records) < 2 {
		// A lone header row has no data.
		return Layout{}, ErrEmptyFile
	}

	cols, missing := mapHeader(records[0])
	if len(missing) > 0 {
		return Layout{}, fmt.Errorf("unmappable required columns: %s", strings.Join(missing, ", "))
	}
	return Layout{Kind: LayoutStandard, Columns: cols}, nil
}

func isHeaderlessRow(row []string) bool {
	if len(row) < bankNumFields {
		return false
	}
	return bankDateRe.MatchString(strings.TrimSpace(row[bankColDate])) &&
		bankAmountRe.MatchString(strings.TrimSpace(row[bankColAmount])) &&
		strings.TrimSpace(row[bankColDesc]) != ""
}

func mapHeader(header []string) (ColumnMapping, []string) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	cols := ColumnMapping{Date: -1, Description: -1, Amount: -1, Category: -1, Location: -1, PaymentMethod: -1}
	claimed := make(map[int]bool)
	var missing []string

	for _, syn := range headerSynonyms {
		idx := -1
		for i, h := range normalized {
			if claimed[i] {
				continue
			}
			for _, name := range syn.names {
				if strings.Contains(h, name) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}

		if idx >= 0 {
			claimed[idx] = true
		} else if syn.required {
			missing = append(missing, syn.field)
		}

		switch syn.field {
		case "date":
			cols.Date = idx
		case "description":
			cols.Description = idx
		case "amount":
			cols.Amount = idx
		case "category":
			cols.Category = idx
		case "location":
			cols.Location = idx
		case "payment_method":
			cols.PaymentMethod = idx
		}
	}
	return cols, missing
}

// normalizeHeader lowercases a header and collapses non-alphanumeric
// runs to single spaces, so "Payment-Method" and "payment_method" both
// match "payment method".
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
