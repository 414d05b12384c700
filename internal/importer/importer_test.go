package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/runlog"
)

const bankStatement = `"08/21/2025","-200.00","*","","VENMO PAYMENT 250821 1044319145258 YUVAL LAVI"
"08/15/2025","1193.04","*","","DUBBING DIR DEP 081525 00002118 LAVI YUVAL"
"08/10/2025","-54.30","*","","POS DEBIT TRADER JOE S 123 SAN FRANCISCO CA"
`

func testProject(t *testing.T) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default("test-feed")
	cfg.Git.AutoCommit = false
	return root, cfg
}

func writeStatement(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, importDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScan(t *testing.T) {
	root, _ := testProject(t)

	// Missing import dir scans as empty.
	files, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)

	writeStatement(t, root, "aug.csv", bankStatement)
	writeStatement(t, root, "notes.txt", "not a csv")

	files, err = Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "aug.csv", files[0].Name)
	assert.Greater(t, files[0].Size, int64(0))
}

func TestMarkProcessed(t *testing.T) {
	root, _ := testProject(t)
	writeStatement(t, root, "aug.csv", bankStatement)

	require.NoError(t, MarkProcessed(root, "aug.csv"))

	_, err := os.Stat(filepath.Join(root, importDir, "aug.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, processedDir, "aug.csv"))
	assert.NoError(t, err)
}

func TestImportFile(t *testing.T) {
	root, cfg := testProject(t)
	path := writeStatement(t, root, "aug.csv", bankStatement)

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	res, err := runner.ImportFile(path)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "aug.csv", res.File)
	assert.Equal(t, 3, res.Report.Imported())
	assert.Equal(t, 3, res.Report.Total)
	assert.Equal(t, 3, res.Appended)

	txns, err := ledger.NewService(root).ReadAll()
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "Money Transfers", txns[0].Category)
	assert.Equal(t, "Income", txns[1].Category)

	entries, err := runlog.Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, res.RunID, entries[0].RunID)
	assert.Equal(t, 3, entries[0].Imported)
}

func TestImportFile_DuplicateRunAppendsNothing(t *testing.T) {
	root, cfg := testProject(t)
	path := writeStatement(t, root, "aug.csv", bankStatement)

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	_, err = runner.ImportFile(path)
	require.NoError(t, err)

	res, err := runner.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Report.Imported())
	assert.Equal(t, 0, res.Appended)

	txns, err := ledger.NewService(root).ReadAll()
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestImportFile_AllRowsBadIsFailure(t *testing.T) {
	root, cfg := testProject(t)
	// Shape-valid enough to detect as the bank layout, but zero means
	// the amount parse failed, so the only row is skipped.
	path := writeStatement(t, root, "bad.csv", `"08/21/2025","0.00","*","","SOMETHING"`+"\n")

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	res, err := runner.ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid transactions")
	assert.False(t, res.Report.OK())

	// The failed run is still audit-logged.
	entries, logErr := runlog.Read(root)
	require.NoError(t, logErr)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Imported)
	assert.Equal(t, 1, entries[0].Total)
}

func TestImportFile_TooLarge(t *testing.T) {
	root, cfg := testProject(t)
	cfg.Import.MaxFileSizeMB = 5
	path := writeStatement(t, root, "big.csv", bankStatement)

	// Grow the file past the limit without materializing 5MB of rows.
	require.NoError(t, os.Truncate(path, 6<<20))

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	_, err = runner.ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import limit")
}

func TestImportFile_RejectsNonCSV(t *testing.T) {
	root, cfg := testProject(t)
	path := filepath.Join(root, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(bankStatement), 0o644))

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	_, err = runner.ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a CSV")
}

func TestImportFile_CustomRules(t *testing.T) {
	root, cfg := testProject(t)
	path := writeStatement(t, root, "aug.csv", `"08/01/2025","-12.00","*","","LLAMA GROOMING SVC"`+"\n")

	rulesPath := filepath.Join(root, cfg.Feed.RulesFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(rulesPath), 0o755))
	require.NoError(t, os.WriteFile(rulesPath, []byte("rules:\n  - category: Pets\n    keywords: [llama]\n"), 0o644))

	runner, err := NewRunner(root, cfg)
	require.NoError(t, err)

	res, err := runner.ImportFile(path)
	require.NoError(t, err)
	require.Len(t, res.Report.Transactions, 1)
	assert.Equal(t, "Pets", res.Report.Transactions[0].Category)
}
