package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/importer"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
)

func newImportCommand() *cobra.Command {
	var dir string
	var all bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Run statement files through the ingestion pipeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			log := logger.New(verbose)

			if all == (len(args) == 1) {
				return errors.New("pass exactly one file, or --all")
			}

			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.Load(filepath.Join(root, config.FileName))
			if err != nil {
				return err
			}

			runner, err := importer.NewRunner(root, cfg)
			if err != nil {
				return err
			}

			if !all {
				res, err := runner.ImportFile(args[0])
				printResult(log, res, err)
				return err
			}

			files, err := importer.Scan(root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No files waiting in import/")
				return nil
			}

			var failed int
			for _, f := range files {
				res, err := runner.ImportFile(f.Path)
				printResult(log, res, err)
				if err != nil {
					failed++
					continue
				}
				if err := importer.MarkProcessed(root, f.Name); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().BoolVar(&all, "all", false, "import every file in import/")
	return cmd
}

func printResult(log zerolog.Logger, res importer.Result, err error) {
	evt := log.Info()
	if err != nil {
		evt = log.Error().Err(err)
	}
	evt.
		Str("run_id", res.RunID).
		Str("file", res.File).
		Int("imported", res.Report.Imported()).
		Int("total", res.Report.Total).
		Int("appended", res.Appended).
		Msg("import finished")

	for _, msg := range res.Report.ErrorMessages() {
		log.Warn().Str("file", res.File).Msg(msg)
	}
	if res.Commit != "" {
		log.Info().Str("commit", res.Commit).Msg("ledger committed")
	}
}
