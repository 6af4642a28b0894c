package consolidate

import (
	"sort"
	"strings"

	"github.com/whalesrecords/royalty/internal/model"
)

// NamedResult is one result set entering a merge, labelled by the analysis
// name and the template that produced it.
type NamedResult struct {
	Name     string
	Template string
	Rows     []model.AggregateRow
}

// Options controls the main consolidation path.
type Options struct {
	AddSource bool // tag rows with their template's distributor label
	Dedupe    bool // collapse duplicate (Period, Track) keys, summing revenue
}

// Combine merges a primary result set with prior saved analyses. The
// resolve function maps a template name to its distributor label (the
// template's source field, falling back to the name itself). Returns the
// merged rows sorted by (Period, Track) and the distinct source labels
// encountered.
func Combine(primary NamedResult, priors []NamedResult, resolve func(templateName string) string, opts Options) ([]model.AggregateRow, []string) {
	sourceSet := make(map[string]bool)
	var all []model.AggregateRow

	collect := func(set NamedResult) {
		for _, row := range set.Rows {
			if opts.AddSource {
				source := resolve(set.Template)
				row.Source = source
				sourceSet[source] = true
			}
			all = append(all, row)
		}
	}
	collect(primary)
	for _, prior := range priors {
		collect(prior)
	}

	if opts.Dedupe {
		all = dedupe(all)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Period != all[j].Period {
			return all[i].Period < all[j].Period
		}
		return all[i].Track < all[j].Track
	})

	sources := make([]string, 0, len(sourceSet))
	for s := range sourceSet {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return all, sources
}

// dedupe collapses rows sharing a (Period, Track) key, summing both revenue
// columns and accumulating distinct source labels. The first row of a key
// keeps its artist and UPC.
func dedupe(rows []model.AggregateRow) []model.AggregateRow {
	type key struct{ period, track string }
	merged := make(map[key]*model.AggregateRow)
	var order []key

	for _, row := range rows {
		k := key{row.Period, row.Track}
		existing, ok := merged[k]
		if !ok {
			copied := row
			merged[k] = &copied
			order = append(order, k)
			continue
		}

		total, _, terr := model.ParseAmount(existing.TotalRevenue)
		addTotal, currency, aerr := model.ParseAmount(row.TotalRevenue)
		if terr == nil && aerr == nil {
			existing.TotalRevenue = model.FormatAmount(total.Add(addTotal), currency)
		}
		artist, _, terr := model.ParseAmount(existing.ArtistRevenue)
		addArtist, currency, aerr := model.ParseAmount(row.ArtistRevenue)
		if terr == nil && aerr == nil {
			existing.ArtistRevenue = model.FormatAmount(artist.Add(addArtist), currency)
		}

		if row.Source != "" && !strings.Contains(existing.Source, row.Source) {
			if existing.Source != "" {
				existing.Source += ", " + row.Source
			} else {
				existing.Source = row.Source
			}
		}
	}

	out := make([]model.AggregateRow, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out
}
