package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/analysis"
	"github.com/whalesrecords/royalty/internal/config"
	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/export"
	"github.com/whalesrecords/royalty/internal/history"
	"github.com/whalesrecords/royalty/internal/model"
	"github.com/whalesrecords/royalty/internal/templates"
)

type analyzeOptions struct {
	dir          string
	templateName string
	mapping      model.ColumnTemplate
	grouping     string
	currency     string
	advances     string
	tracks       []string
	artists      []string
	from, to     string
	save         bool
	saveName     string
	exportPath   string
	xlsxPath     string
}

func newAnalyzeCommand(configPath *string) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Aggregate revenue from distributor CSV files",
		Long: `Analyze loads one or more distributor CSV files, maps their columns
through a saved or ad-hoc template, and totals revenue per period and track.

The column mapping comes from --template, from the individual --*-column
flags, or is auto-detected against the saved templates when neither is
given.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, *configPath, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory to scan for CSV files")
	cmd.Flags().StringVar(&opts.templateName, "template", "", "saved template to apply")
	cmd.Flags().StringVar(&opts.mapping.TrackColumn, "track-column", "", "column holding track titles")
	cmd.Flags().StringVar(&opts.mapping.ArtistColumn, "artist-column", "", "column holding artist names")
	cmd.Flags().StringVar(&opts.mapping.UPCColumn, "upc-column", "", "column holding UPC codes")
	cmd.Flags().StringVar(&opts.mapping.RevenueColumn, "revenue-column", "", "column holding revenue amounts")
	cmd.Flags().StringVar(&opts.mapping.DateColumn, "date-column", "", "column holding sale dates")
	cmd.Flags().StringVar(&opts.grouping, "group", "month", "period grouping: month, quarter or year")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "currency label for totals (default from config)")
	cmd.Flags().StringVar(&opts.advances, "advances", "0", "advances to recoup from the grand total")
	cmd.Flags().StringArrayVar(&opts.tracks, "track", nil, "only include this track (repeatable)")
	cmd.Flags().StringArrayVar(&opts.artists, "artist", nil, "only include this artist (repeatable)")
	cmd.Flags().StringVar(&opts.from, "from", "", "start date, inclusive (empty for open)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date, inclusive (empty for open)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the result to the analysis history")
	cmd.Flags().StringVar(&opts.saveName, "name", "", "history entry name (default derived from date and template)")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "write the results table to this CSV file")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write the results table to this xlsx file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, configPath string, args []string, opts analyzeOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openTemplates(cfg)
	if err != nil {
		return err
	}

	files, err := collectFiles(args, opts.dir)
	if err != nil {
		return err
	}

	tpl, templateName, err := resolveTemplate(cmd, store, cfg, files, opts)
	if err != nil {
		return err
	}

	grouping, err := model.ParseGrouping(opts.grouping)
	if err != nil {
		return err
	}
	advances, err := decimal.NewFromString(opts.advances)
	if err != nil {
		return fmt.Errorf("invalid --advances value %q", opts.advances)
	}
	from, err := parseDateFlag("from", opts.from)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", opts.to)
	if err != nil {
		return err
	}
	currency := opts.currency
	if currency == "" {
		currency = cfg.Currencies.Default
	}

	result, err := analysis.Run(analysis.Request{
		Files:    files,
		Template: tpl,
		Grouping: grouping,
		Currency: currency,
		Advances: advances,
		Tracks:   opts.tracks,
		Artists:  opts.artists,
		From:     from,
		To:       to,
	})
	if err != nil {
		var rangeErr *analysis.RangeError
		if errors.As(err, &rangeErr) {
			return fmt.Errorf("%s (retry with --from %s)", rangeErr.Error(), rangeErr.AdjustedFrom.Format("2006-01-02"))
		}
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	printResult(cmd, result)

	if opts.exportPath != "" {
		if err := writeResultsFile(opts.exportPath, result.Rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nResults exported to %s\n", opts.exportPath)
	}
	if opts.xlsxPath != "" {
		if err := export.WriteResultsXLSX(opts.xlsxPath, result.Rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results exported to %s\n", opts.xlsxPath)
	}

	if opts.save {
		name := opts.saveName
		if name == "" {
			name = history.DefaultName(time.Now(), templateName)
		}
		histStore, err := openHistory(cfg)
		if err != nil {
			return err
		}
		histStore.Put(name, model.AnalysisResult{
			Date:     time.Now(),
			Template: templateName,
			Results:  result.Rows,
			Summary:  result.Summary,
		})
		if err := histStore.Save(); err != nil {
			return fmt.Errorf("saving analysis: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved analysis %q\n", name)
	}
	return nil
}

// resolveTemplate picks the column mapping: a named saved template, the
// explicit column flags, or the best-scoring saved template against the
// first file's headers.
func resolveTemplate(cmd *cobra.Command, store *templates.Store, cfg *config.Config, files []string, opts analyzeOptions) (model.ColumnTemplate, string, error) {
	if opts.templateName != "" {
		tpl, ok := store.Get(opts.templateName)
		if !ok {
			return model.ColumnTemplate{}, "", fmt.Errorf("template %q not found", opts.templateName)
		}
		return tpl, opts.templateName, nil
	}
	if opts.mapping != (model.ColumnTemplate{}) {
		return opts.mapping, "", nil
	}
	if len(files) == 0 {
		return model.ColumnTemplate{}, "", &templates.ValidationError{Reason: "no input files"}
	}

	frame, err := csvio.LoadFrame(files[0])
	if err != nil {
		return model.ColumnTemplate{}, "", err
	}
	kw := keywordsFor(cfg)
	name, score := store.BestMatch(frame.Columns, kw)
	if name != "" && score >= templates.MatchThreshold {
		fmt.Fprintf(cmd.ErrOrStderr(), "using template %q (match %.0f%%)\n", name, score*100)
		tpl, _ := store.Get(name)
		return tpl, name, nil
	}

	suggested := templates.Suggest(frame.Columns, kw)
	if !suggested.Usable() {
		return model.ColumnTemplate{}, "", &templates.ValidationError{
			Reason: fmt.Sprintf("no template matches %s; set the column flags explicitly", filepath.Base(files[0])),
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "no saved template matched; using suggested mapping (track=%s, revenue=%s, date=%s)\n",
		suggested.TrackColumn, suggested.RevenueColumn, suggested.DateColumn)
	return suggested, "", nil
}

func printResult(cmd *cobra.Command, result *analysis.Result) {
	out := cmd.OutOrStdout()
	for _, row := range result.Rows {
		if row.Artist != "" {
			fmt.Fprintf(out, "%-10s  %-30s  %-20s  %s\n", row.Period, row.Track, row.Artist, row.TotalRevenue)
		} else {
			fmt.Fprintf(out, "%-10s  %-30s  %s\n", row.Period, row.Track, row.TotalRevenue)
		}
	}
	fmt.Fprintln(out)
	for _, block := range result.Summary {
		fmt.Fprintln(out, block)
	}
}

func writeResultsFile(path string, rows []model.AggregateRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WriteResults(f, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
