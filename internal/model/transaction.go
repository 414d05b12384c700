package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized row produced by the ingest pipeline.
type Transaction struct {
	Date          time.Time
	Description   string
	Amount        decimal.Decimal // positive = inflow, negative = outflow
	Category      string
	Location      string // optional, empty when not detected
	PaymentMethod string // "Bank Transfer" when not detected
	Reference     string // derived, e.g. feed_20250821_VENMOPAYME
}

// ImportError records one skipped input row.
type ImportError struct {
	Row     int // 1-based physical CSV row
	Message string
}
