package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import run log.
type Entry struct {
	Timestamp time.Time
	RunID     string // uuid per import run
	File      string
	Imported  int
	Total     int
	Errors    []string
}

// Header is the CSV header for import-runs.csv.
const Header = "timestamp,run_id,file,imported,total,errors"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/import-runs.csv"
	errSeparator = ";"
	colTimestamp = 0
	colRunID     = 1
	colFile      = 2
	colImported  = 3
	colTotal     = 4
	colErrors    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colFile] = e.File
	row[colImported] = strconv.Itoa(e.Imported)
	row[colTotal] = strconv.Itoa(e.Total)
	row[colErrors] = strings.Join(e.Errors, errSeparator)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	imported, err := strconv.Atoi(record[colImported])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing imported %q: %w", record[colImported], err)
	}

	total, err := strconv.Atoi(record[colTotal])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing total %q: %w", record[colTotal], err)
	}

	var errs []string
	if record[colErrors] != "" {
		errs = strings.Split(record[colErrors], errSeparator)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		File:      record[colFile],
		Imported:  imported,
		Total:     total,
		Errors:    errs,
	}, nil
}

// Append writes entries to <root>/logs/import-runs.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := f.WriteString(Header + "\n"); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	defer cw.Flush()
	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing run log row: %w", err)
		}
	}
	return cw.Error()
}

// Read returns all entries from <root>/logs/import-runs.csv. A missing
// file is an empty log.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
