package model

import "fmt"

// Report is the outcome of one pipeline run over one file.
type Report struct {
	Transactions []Transaction
	Errors       []ImportError
	Total        int // data rows seen, valid or not
}

// Imported returns the number of transactions produced.
func (r Report) Imported() int { return len(r.Transactions) }

// OK reports whether the run produced at least one transaction.
// A non-empty input where every row was skipped is a failed run,
// not a success with zero rows.
func (r Report) OK() bool { return len(r.Transactions) > 0 }

// Summary is the wire shape handed to import-result consumers.
type Summary struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

// Summarize flattens a report into its result summary.
func (r Report) Summarize() Summary {
	return Summary{
		Success:  r.OK(),
		Imported: r.Imported(),
		Total:    r.Total,
		Errors:   r.ErrorMessages(),
	}
}

// ErrorMessages renders the row errors as "row N: message" strings.
func (r Report) ErrorMessages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return msgs
}
