package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bankfeed project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "feed name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(dir, name string, noGit bool) error {
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"ledger",
		"logs",
		"rules",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the rules file with the built-in table so users can edit it.
	rulesPath := filepath.Join(dir, cfg.Feed.RulesFile)
	if err := categorize.SaveRules(rulesPath, categorize.DefaultRules()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	if !noGit && !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		if _, err := gitops.CommitAll(dir, "Initialize bankfeed project", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Printf("Initialized bankfeed project %q in %s\n", name, dir)
	return nil
}
