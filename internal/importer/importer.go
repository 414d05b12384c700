package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/gitops"
	"github.com/bankfeed-dev/bankfeed/internal/ingest"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/runlog"
)

// importDir is the subdirectory watched for statement CSVs.
const importDir = "import"

// processedDir is where imported files are moved.
const processedDir = "import/processed"

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Result summarizes one completed import run.
type Result struct {
	RunID    string
	File     string
	Report   model.Report
	Appended int    // rows written to the ledger (duplicates skipped)
	Commit   string // short git hash when auto-commit ran
}

// Runner imports statement files into a project directory.
type Runner struct {
	root     string
	cfg      *config.Config
	pipeline *ingest.Pipeline
	ledger   *ledger.Service
}

// NewRunner creates a Runner for a project. Categorization rules come
// from the configured rules file when it exists.
func NewRunner(root string, cfg *config.Config) (*Runner, error) {
	rules, err := loadRules(root, cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{
		root: root,
		cfg:  cfg,
		pipeline: ingest.New(ingest.Options{
			Rules:       rules,
			StrictDates: cfg.Import.StrictDates,
		}),
		ledger: ledger.NewService(root),
	}, nil
}

// Scan returns CSV files waiting in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// ImportFile runs the full pipeline on one statement file: parse and
// normalize, append survivors to the ledger, record a run-log row, and
// auto-commit when configured. A run where every row was skipped returns
// the Result and an error so callers surface the row errors.
func (r *Runner) ImportFile(path string) (Result, error) {
	res := Result{
		RunID: uuid.NewString(),
		File:  filepath.Base(path),
	}

	if !strings.HasSuffix(strings.ToLower(res.File), ".csv") {
		return res, fmt.Errorf("%s is not a CSV file", res.File)
	}

	maxSize := int64(r.cfg.Import.MaxFileSizeMB) << 20
	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxSize {
		return res, fmt.Errorf("%s is %d bytes, above the %dMB import limit", res.File, info.Size(), r.cfg.Import.MaxFileSizeMB)
	}

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("opening %s: %w", path, err)
	}
	report, err := r.pipeline.Run(f)
	f.Close()
	if err != nil {
		return res, fmt.Errorf("%s: %w", res.File, err)
	}
	res.Report = report

	appended, err := r.ledger.Append(report.Transactions)
	if err != nil {
		return res, err
	}
	res.Appended = appended

	logErr := runlog.Append(r.root, []runlog.Entry{{
		Timestamp: time.Now().UTC(),
		RunID:     res.RunID,
		File:      res.File,
		Imported:  report.Imported(),
		Total:     report.Total,
		Errors:    report.ErrorMessages(),
	}})
	if logErr != nil {
		return res, fmt.Errorf("writing run log: %w", logErr)
	}

	if !report.OK() {
		return res, fmt.Errorf("%s: no valid transactions in %d rows", res.File, report.Total)
	}

	if r.cfg.Git.AutoCommit && gitops.IsRepo(r.root) {
		msg := fmt.Sprintf("Import %s (%d of %d rows)", res.File, report.Imported(), report.Total)
		hash, err := gitops.CommitAll(r.root, msg, r.cfg.Git.AuthorName, r.cfg.Git.AuthorEmail)
		if err != nil {
			return res, fmt.Errorf("auto-commit: %w", err)
		}
		res.Commit = hash
	}
	return res, nil
}

func loadRules(root string, cfg *config.Config) ([]categorize.Rule, error) {
	if cfg.Feed.RulesFile == "" {
		return nil, nil
	}
	path := cfg.Feed.RulesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return categorize.LoadRules(path)
}
