package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/importer"
)

func newScanCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List statement files waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			files, err := importer.Scan(root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No files waiting in import/")
				return nil
			}
			for _, f := range files {
				fmt.Printf("%s\t%d bytes\n", f.Name, f.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
