package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/export"
)

func newMergeTracksCommand(configPath *string) *cobra.Command {
	var dir, trackColumn, dateColumn, outPath string
	var tracks []string

	cmd := &cobra.Command{
		Use:   "merge-tracks [files...]",
		Short: "Merge input files into one CSV keeping only selected tracks",
		Long: `Merge-tracks combines the raw rows of the input files, keeping every
original column plus a Source File column, filtered to the tracks given
via --track. Rows sort by date then track when --date-column is set.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			files, err := collectFiles(args, dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files")
			}

			var frames []*csvio.Frame
			for _, file := range files {
				frame, err := csvio.LoadFrame(file)
				if err != nil {
					return err
				}
				frames = append(frames, frame)
			}

			if outPath == "" {
				if err := os.MkdirAll(cfg.ExportDir(), 0o755); err != nil {
					return err
				}
				outPath = filepath.Join(cfg.ExportDir(), export.MergeFileName(time.Now()))
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()

			n, err := export.MergeTracks(f, frames, trackColumn, dateColumn, tracks)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d rows from %d files into %s\n", n, len(files), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan for CSV files")
	cmd.Flags().StringVar(&trackColumn, "track-column", "", "column holding track titles (required)")
	cmd.Flags().StringVar(&dateColumn, "date-column", "", "column holding sale dates, used for sorting")
	cmd.Flags().StringArrayVar(&tracks, "track", nil, "track to keep (repeatable, required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default under the export directory)")
	_ = cmd.MarkFlagRequired("track-column")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}
