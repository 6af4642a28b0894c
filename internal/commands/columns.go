package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/analysis"
	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/templates"
)

func newColumnsCommand(configPath *string) *cobra.Command {
	var showScores, showValues bool

	cmd := &cobra.Command{
		Use:   "columns <file>...",
		Short: "Inspect CSV headers and match them against saved templates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openTemplates(cfg)
			if err != nil {
				return err
			}
			kw := keywordsFor(cfg)

			out := cmd.OutOrStdout()
			for _, file := range args {
				frame, err := csvio.LoadFrame(file)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s (%d rows)\n", file, len(frame.Rows))
				for _, col := range frame.Columns {
					fmt.Fprintf(out, "  %s\n", col)
				}

				if showScores {
					for _, name := range store.Names() {
						tpl, _ := store.Get(name)
						fmt.Fprintf(out, "  %-20s %.0f%%\n", name, templates.Score(tpl, frame.Columns, kw)*100)
					}
				}

				name, score := store.BestMatch(frame.Columns, kw)
				if name != "" && score >= templates.MatchThreshold {
					fmt.Fprintf(out, "best match: %s (%.0f%%)\n", name, score*100)
					if showValues {
						tpl, _ := store.Get(name)
						tracks, artists := analysis.Enumerate([]string{file}, tpl)
						fmt.Fprintf(out, "tracks:  %s\n", strings.Join(tracks, ", "))
						if len(artists) > 0 {
							fmt.Fprintf(out, "artists: %s\n", strings.Join(artists, ", "))
						}
					}
				} else {
					suggested := templates.Suggest(frame.Columns, kw)
					fmt.Fprintln(out, "no saved template matches; suggested mapping:")
					fmt.Fprintf(out, "  track:   %s\n", suggested.TrackColumn)
					fmt.Fprintf(out, "  artist:  %s\n", suggested.ArtistColumn)
					fmt.Fprintf(out, "  upc:     %s\n", suggested.UPCColumn)
					fmt.Fprintf(out, "  revenue: %s\n", suggested.RevenueColumn)
					fmt.Fprintf(out, "  date:    %s\n", suggested.DateColumn)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showScores, "scores", false, "show the match score of every saved template")
	cmd.Flags().BoolVar(&showValues, "values", false, "list the distinct tracks and artists under the matched template")

	return cmd
}
