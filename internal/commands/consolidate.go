package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/consolidate"
	"github.com/whalesrecords/royalty/internal/history"
	"github.com/whalesrecords/royalty/internal/model"
)

var consolidateColumns = []string{
	"Period", "Track", "Artist", "UPC", "Source", "Total Revenue", "Artist Revenue",
}

func newConsolidateCommand(configPath *string) *cobra.Command {
	var with []string
	var addSource, dedupe bool
	var exportPath, saveName string
	var keys []string
	var ops []string

	cmd := &cobra.Command{
		Use:   "consolidate <analysis>",
		Short: "Merge a saved analysis with earlier ones",
		Long: `Consolidate merges the named analysis with the prior analyses given
via --with. With --dedupe, rows sharing a (period, track) key collapse into
one row with summed revenue. With --add-source, every row is tagged with
the distributor label of the template that produced it.

Passing --key switches to plan mode: rows group by the given key columns
and every column named in --op is reduced with the chosen operation
(union, join or total).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			histStore, err := openHistory(cfg)
			if err != nil {
				return err
			}
			tplStore, err := openTemplates(cfg)
			if err != nil {
				return err
			}

			primary, err := loadNamedResult(histStore, args[0])
			if err != nil {
				return err
			}
			var priors []consolidate.NamedResult
			for _, name := range with {
				prior, err := loadNamedResult(histStore, name)
				if err != nil {
					return err
				}
				priors = append(priors, prior)
			}

			resolve := func(templateName string) string {
				if templateName == "" {
					return "Unknown"
				}
				tpl, _ := tplStore.Get(templateName)
				return tpl.SourceLabel(templateName)
			}

			merged, sources := consolidate.Combine(primary, priors, resolve, consolidate.Options{
				AddSource: addSource,
				Dedupe:    dedupe && len(keys) == 0,
			})

			out := cmd.OutOrStdout()
			if len(keys) > 0 {
				plan, err := buildPlan(keys, ops)
				if err != nil {
					return err
				}
				reduced := consolidate.Apply(rowsToMaps(merged), plan)
				if err := writeMaps(cmd, exportPath, reduced); err != nil {
					return err
				}
				fmt.Fprintf(out, "Consolidated %d rows into %d\n", len(merged), len(reduced))
				return nil
			}

			for _, row := range merged {
				fmt.Fprintf(out, "%-10s  %-30s  %-20s  %s\n", row.Period, row.Track, row.Source, row.TotalRevenue)
			}
			if len(sources) > 0 {
				fmt.Fprintf(out, "\nSources: %s\n", strings.Join(sources, ", "))
			}

			if exportPath != "" {
				if err := writeResultsFile(exportPath, merged); err != nil {
					return err
				}
				fmt.Fprintf(out, "Results exported to %s\n", exportPath)
			}
			if saveName != "" {
				histStore.Put(saveName, model.AnalysisResult{
					Date:     time.Now(),
					Template: primary.Template,
					Results:  merged,
					Summary:  []string{fmt.Sprintf("Consolidated from: %s", strings.Join(append([]string{args[0]}, with...), ", "))},
				})
				if err := histStore.Save(); err != nil {
					return fmt.Errorf("saving analysis: %w", err)
				}
				fmt.Fprintf(out, "Saved analysis %q\n", saveName)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&with, "with", nil, "prior analysis to merge in (repeatable)")
	cmd.Flags().BoolVar(&addSource, "add-source", false, "tag rows with their distributor label")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "collapse duplicate (period, track) rows, summing revenue")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the merged table to this CSV file")
	cmd.Flags().StringVar(&saveName, "save", "", "save the merged result under this history name")
	cmd.Flags().StringArrayVar(&keys, "key", nil, "plan mode: group rows by this column (repeatable)")
	cmd.Flags().StringArrayVar(&ops, "op", nil, "plan mode: reduce a column, e.g. 'Total Revenue=total' (repeatable)")

	return cmd
}

func loadNamedResult(store *history.Store, name string) (consolidate.NamedResult, error) {
	entry, ok := store.Get(name)
	if !ok {
		return consolidate.NamedResult{}, fmt.Errorf("analysis %q not found", name)
	}
	return consolidate.NamedResult{Name: name, Template: entry.Template, Rows: entry.Results}, nil
}

func buildPlan(keys, ops []string) (consolidate.Plan, error) {
	plan := consolidate.Plan{Keys: keys, Ops: make(map[string]consolidate.ReducerKind)}
	for _, op := range ops {
		column, reducer, found := strings.Cut(op, "=")
		if !found {
			return plan, fmt.Errorf("invalid --op %q (want column=reducer)", op)
		}
		kind, err := consolidate.ParseReducer(reducer)
		if err != nil {
			return plan, err
		}
		plan.Ops[column] = kind
	}
	return plan, nil
}

func rowsToMaps(rows []model.AggregateRow) []map[string]string {
	maps := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		maps = append(maps, map[string]string{
			"Period":         row.Period,
			"Track":          row.Track,
			"Artist":         row.Artist,
			"UPC":            row.UPC,
			"Source":         row.Source,
			"Total Revenue":  row.TotalRevenue,
			"Artist Revenue": row.ArtistRevenue,
		})
	}
	return maps
}

func writeMaps(cmd *cobra.Command, path string, rows []map[string]string) error {
	var cw *csv.Writer
	if path == "" {
		cw = csv.NewWriter(cmd.OutOrStdout())
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		cw = csv.NewWriter(f)
	}

	if err := cw.Write(consolidateColumns); err != nil {
		return err
	}
	record := make([]string, len(consolidateColumns))
	for _, row := range rows {
		for i, col := range consolidateColumns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
