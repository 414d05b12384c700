package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// ledgerDir is the subdirectory holding the transactions file.
const ledgerDir = "ledger"

// ledgerFile is the transactions file relative to the project root.
const ledgerFile = "ledger/transactions.csv"

// Service reads and appends the project's transaction ledger.
type Service struct {
	root string
}

// NewService creates a ledger Service rooted at a project directory.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Path returns the absolute path of the transactions file.
func (s *Service) Path() string {
	return filepath.Join(s.root, ledgerFile)
}

// ReadAll returns every transaction in the ledger. A missing file is an
// empty ledger, not an error.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()
	return ReadTransactions(f)
}

// Append adds transactions to the ledger, creating the file and header on
// first use. Transactions whose Reference is already present are skipped,
// so re-importing the same file is idempotent. Returns how many rows were
// actually written.
func (s *Service) Append(txns []model.Transaction) (int, error) {
	existing, err := s.ReadAll()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, txn := range existing {
		seen[txn.Reference] = true
	}

	var fresh []model.Transaction
	for _, txn := range txns {
		if txn.Reference != "" && seen[txn.Reference] {
			continue
		}
		seen[txn.Reference] = true
		fresh = append(fresh, txn)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Join(s.root, ledgerDir), 0o755); err != nil {
		return 0, fmt.Errorf("creating ledger dir: %w", err)
	}

	path := s.Path()
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := f.WriteString(Header + "\n"); err != nil {
			return 0, fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}
