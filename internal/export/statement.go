package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/whalesrecords/royalty/internal/model"
)

var statementHeaders = []string{
	"Quarter", "Period", "Artist", "Source", "UPC", "Track", "Total Revenue", "Artist Revenue",
}

// StatementOptions controls per-artist statement generation.
type StatementOptions struct {
	Dir    string    // output directory, created if missing
	Prefix string    // label prepended to every filename
	Now    time.Time // timestamp baked into filenames
}

// WriteStatements writes one CSV per artist found in rows: the artist's
// detail rows sorted by period and track, a blank separator, per-quarter
// TOTAL rows, another separator and a grand total row. Rows with an empty
// artist are skipped. Returns the paths written, sorted by artist.
func WriteStatements(rows []model.AggregateRow, opts StatementOptions) ([]string, error) {
	byArtist := make(map[string][]model.AggregateRow)
	for _, row := range rows {
		if row.Artist == "" {
			continue
		}
		byArtist[row.Artist] = append(byArtist[row.Artist], row)
	}
	if len(byArtist) == 0 {
		return nil, fmt.Errorf("no artist data available to export")
	}

	artists := make([]string, 0, len(byArtist))
	for artist := range byArtist {
		artists = append(artists, artist)
	}
	sort.Strings(artists)

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, artist := range artists {
		path, err := writeStatement(artist, byArtist[artist], opts)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

type quarterTotal struct {
	total  decimal.Decimal
	artist decimal.Decimal
}

func writeStatement(artist string, rows []model.AggregateRow, opts StatementOptions) (string, error) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].Track < rows[j].Track
	})

	sources := distinctSources(rows)
	sourceLine := strings.Join(sources, ", ")

	totals := make(map[string]*quarterTotal)
	var quarters []string

	var records [][]string
	for _, row := range rows {
		quarter := model.QuarterOf(row.Period)
		qt, ok := totals[quarter]
		if !ok {
			qt = &quarterTotal{}
			totals[quarter] = qt
			quarters = append(quarters, quarter)
		}

		total, _, terr := model.ParseAmount(row.TotalRevenue)
		artistRev, _, aerr := model.ParseAmount(row.ArtistRevenue)
		if terr == nil {
			qt.total = qt.total.Add(total)
		}
		if aerr == nil {
			qt.artist = qt.artist.Add(artistRev)
		}

		records = append(records, []string{
			quarter, row.Period, artist, row.Source, row.UPC, row.Track,
			plainAmount(row.TotalRevenue), plainAmount(row.ArtistRevenue),
		})
	}

	sort.Strings(quarters)
	records = append(records, blankStatementRow())
	grand := &quarterTotal{}
	for _, quarter := range quarters {
		qt := totals[quarter]
		grand.total = grand.total.Add(qt.total)
		grand.artist = grand.artist.Add(qt.artist)
		records = append(records, []string{
			quarter, "TOTAL", artist, sourceLine, "", "Quarterly Total",
			qt.total.StringFixed(2), qt.artist.StringFixed(2),
		})
	}
	records = append(records, blankStatementRow())
	records = append(records, []string{
		"TOTAL", "ALL QUARTERS", artist, sourceLine, "", "Grand Total",
		grand.total.StringFixed(2), grand.artist.StringFixed(2),
	})

	path := filepath.Join(opts.Dir, statementFileName(artist, quarters, sources, opts))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(statementHeaders); err != nil {
		return "", err
	}
	if err := cw.WriteAll(records); err != nil {
		return "", err
	}
	return path, nil
}

// statementFileName renders
// "<prefix> - <artist> - Statement - <quarters> - <timestamp> - <sources>.csv".
// Quarter spans wider than two collapse to "<first>_to_<last>".
func statementFileName(artist string, quarters, sources []string, opts StatementOptions) string {
	quartersStr := strings.Join(quarters, "_")
	if len(quarters) > 2 {
		quartersStr = quarters[0] + "_to_" + quarters[len(quarters)-1]
	}
	sourcesStr := "No_Source"
	if len(sources) > 0 {
		sourcesStr = strings.Join(sources, "_")
	}
	return fmt.Sprintf("%s - %s - Statement - %s - %s - %s.csv",
		opts.Prefix, safeFileName(artist), quartersStr, opts.Now.Format("20060102_1504"), sourcesStr)
}

// safeFileName keeps letters, digits, spaces, hyphens and underscores.
func safeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func distinctSources(rows []model.AggregateRow) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, row := range rows {
		if row.Source == "" || seen[row.Source] {
			continue
		}
		seen[row.Source] = true
		sources = append(sources, row.Source)
	}
	sort.Strings(sources)
	return sources
}

func blankStatementRow() []string {
	return make([]string, len(statementHeaders))
}
