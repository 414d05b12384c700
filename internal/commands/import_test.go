package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
)

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "test-feed", true))

	// No git repo in tests; don't attempt commits.
	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Git.AutoCommit = false
	require.NoError(t, config.Save(cfgPath, cfg))

	return dir
}

func TestImportCommand_All(t *testing.T) {
	dir := setupProject(t)

	statement := `"08/21/2025","-200.00","*","","VENMO PAYMENT 250821"` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "aug.csv"), []byte(statement), 0o644))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"import", "--all", "--dir", dir})
	require.NoError(t, cmd.Execute())

	txns, err := ledger.NewService(dir).ReadAll()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Money Transfers", txns[0].Category)

	// Imported file moved out of the way.
	_, err = os.Stat(filepath.Join(dir, "import", "aug.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "aug.csv"))
	assert.NoError(t, err)
}

func TestImportCommand_SingleFile(t *testing.T) {
	dir := setupProject(t)

	statement := "Date,Description,Amount,Category\n2025-08-01,Coffee Bar,-4.50,Dining Out\n"
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(statement), 0o644))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"import", path, "--dir", dir})
	require.NoError(t, cmd.Execute())

	txns, err := ledger.NewService(dir).ReadAll()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Dining Out", txns[0].Category)
}

func TestImportCommand_RequiresFileOrAll(t *testing.T) {
	dir := setupProject(t)

	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"import", "--dir", dir})
	assert.Error(t, cmd.Execute())
}
