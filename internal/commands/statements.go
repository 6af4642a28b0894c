package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/export"
)

func newStatementsCommand(configPath *string) *cobra.Command {
	var dir, prefix string

	cmd := &cobra.Command{
		Use:   "statements <analysis>",
		Short: "Write per-artist royalty statements from a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}

			entry, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("analysis %q not found", args[0])
			}

			if dir == "" {
				dir = cfg.ExportDir()
			}
			if prefix == "" {
				prefix = cfg.Label.StatementPrefix
			}

			paths, err := export.WriteStatements(entry.Results, export.StatementOptions{
				Dir:    dir,
				Prefix: prefix,
				Now:    time.Now(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range paths {
				fmt.Fprintln(out, path)
			}
			fmt.Fprintf(out, "Wrote %d statements to %s\n", len(paths), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "filename prefix (default from config)")

	return cmd
}
