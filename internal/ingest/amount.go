package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountCleaner strips currency symbols, thousands separators, stray
// quotes, and whitespace before numeric parsing.
var amountCleaner = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "",
	",", "", `"`, "", " ", "", "\t", "",
)

// ParseAmount parses a bank amount string into a decimal. Parenthesized
// values are negative ("(123.45)" -> -123.45). Empty or non-numeric
// input is an error; the caller decides what a zero result means.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
