package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Pipeline turns raw bank CSV text into normalized transactions plus
// per-row errors. One Run per file; a Pipeline holds no per-run state
// and is safe to reuse.
type Pipeline struct {
	categorizer *categorize.Categorizer
	strictDates bool
	now         func() time.Time
}

// Options configure a Pipeline.
type Options struct {
	// Rules overrides the built-in categorization table; nil keeps it.
	Rules []categorize.Rule
	// StrictDates turns an unparseable date into a row error instead of
	// falling back to today's date.
	StrictDates bool
	// Now supplies the clock for the date fallback. nil means time.Now.
	Now func() time.Time
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		categorizer: categorize.New(opts.Rules),
		strictDates: opts.StrictDates,
		now:         now,
	}
}

// utf8BOM is stripped from the head of the input if present.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Run processes one uploaded file. File-level rejections (unreadable CSV,
// empty input, unmappable required columns) come back as the error; every
// row-level problem lands in Report.Errors and never aborts the remaining
// rows. A run where no row survived reports Report.OK() == false rather
// than an error, so callers can show the accumulated row errors.
func (p *Pipeline) Run(r io.Reader) (model.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return model.Report{}, fmt.Errorf("reading CSV: %w", err)
	}

	layout, err := Detect(records)
	if err != nil {
		return model.Report{}, err
	}

	dataRows := records
	rowOffset := 1 // 1-based physical row number
	if layout.Kind == LayoutStandard {
		dataRows = records[1:]
		rowOffset = 2 // header is row 1
	}

	report := model.Report{Total: len(dataRows)}
	for i, rec := range dataRows {
		txn, perr := p.processRow(layout, rec, i+rowOffset)
		if perr != nil {
			report.Errors = append(report.Errors, *perr)
			continue
		}
		report.Transactions = append(report.Transactions, txn)
	}
	return report, nil
}

// processRow normalizes one row. Each row is independent; a panic in any
// parser is recovered into an ImportError for that row only.
func (p *Pipeline) processRow(layout Layout, rec []string, row int) (txn model.Transaction, perr *model.ImportError) {
	defer func() {
		if r := recover(); r != nil {
			txn = model.Transaction{}
			perr = &model.ImportError{Row: row, Message: fmt.Sprintf("row processing failed: %v", r)}
		}
	}()

	desc := strings.TrimSpace(field(rec, layout.Columns.Description))
	if layout.Kind == LayoutHeaderless && len(rec) > bankNumFields {
		// The description is the bank format's final field and may itself
		// contain commas; rejoin the overflow.
		desc = strings.TrimSpace(strings.Join(rec[bankColDesc:], ","))
	}
	if desc == "" {
		return model.Transaction{}, &model.ImportError{Row: row, Message: "missing description"}
	}

	rawAmount := field(rec, layout.Columns.Amount)
	amount, err := ParseAmount(rawAmount)
	if err != nil || amount.IsZero() {
		// A real transaction is never exactly zero; zero means the parse failed.
		return model.Transaction{}, &model.ImportError{Row: row, Message: fmt.Sprintf("invalid amount %q", rawAmount)}
	}

	rawDate := field(rec, layout.Columns.Date)
	date, ok := ParseDate(rawDate)
	if !ok {
		if p.strictDates {
			return model.Transaction{}, &model.ImportError{Row: row, Message: fmt.Sprintf("invalid date %q", rawDate)}
		}
		now := p.now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	txn = model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   MakeReference(date, desc),
	}

	// The standard path trusts populated source columns; inference is
	// only a fallback. The headerless bank format has none of these.
	if layout.Kind == LayoutStandard {
		txn.Category = strings.TrimSpace(field(rec, layout.Columns.Category))
		txn.Location = strings.TrimSpace(field(rec, layout.Columns.Location))
		txn.PaymentMethod = strings.TrimSpace(field(rec, layout.Columns.PaymentMethod))
	}
	if txn.Category == "" {
		txn.Category = p.categorizer.Categorize(desc, amount)
	}
	if txn.Location == "" {
		txn.Location = categorize.ExtractLocation(desc)
	}
	if txn.PaymentMethod == "" {
		txn.PaymentMethod = categorize.InferPaymentMethod(desc)
	}
	return txn, nil
}

// field returns rec[idx], or "" for unmapped or out-of-range columns.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
