package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/model"
	"github.com/whalesrecords/royalty/internal/parse"
	"github.com/whalesrecords/royalty/internal/templates"
)

// Request describes one analysis run. Zero From/To bounds are open.
type Request struct {
	Files    []string
	Template model.ColumnTemplate
	Grouping model.Grouping
	Currency string
	Advances decimal.Decimal
	Tracks   []string // filter; empty means all
	Artists  []string // filter; empty means all, ignored without an artist column
	From, To time.Time
}

// PeriodTotal is the revenue total of one period bucket.
type PeriodTotal struct {
	Period string
	Total  decimal.Decimal
}

// Result is the output of an analysis run.
type Result struct {
	Rows         []model.AggregateRow
	PeriodTotals []PeriodTotal
	GrandTotal   decimal.Decimal
	NetTotal     decimal.Decimal
	Currency     string
	Grouping     model.Grouping
	LineItems    int      // rows that survived filtering
	Warnings     []string // skipped files and lines
	Summary      []string
}

// Run executes the full pipeline: validate the mapping, load and clean each
// file, normalize rows into line items, concatenate, filter, group into
// periods and total. Unreadable files are skipped with a warning; the run
// only fails when the mapping is unusable, the date range is inverted, or
// nothing valid remains.
func Run(req Request) (*Result, error) {
	if len(req.Files) == 0 {
		return nil, &templates.ValidationError{Reason: "no input files"}
	}
	if err := templates.Validate(req.Template); err != nil {
		return nil, err
	}
	if !req.From.IsZero() && !req.To.IsZero() && req.From.After(req.To) {
		return nil, &RangeError{From: req.From, To: req.To, AdjustedFrom: req.To.AddDate(0, -1, 0)}
	}
	if req.Grouping == "" {
		req.Grouping = model.GroupByMonth
	}

	var items []model.LineItem
	var warnings []string
	for _, file := range req.Files {
		frame, err := csvio.LoadFrame(file)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		warnings = append(warnings, frame.Warnings...)
		items = append(items, normalize(frame, req.Template)...)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w (checked %d files)", ErrNoValidData, len(req.Files))
	}

	filtered := filter(items, req)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w after applying filters", ErrNoValidData)
	}

	result := groupAndTotal(filtered, req)
	result.Warnings = warnings
	result.Summary = summarize(result, req, filtered)
	return result, nil
}

// normalize converts a cleaned frame into line items, dropping rows that
// fail the invariant (empty track, zero revenue, unparseable date).
func normalize(frame *csvio.Frame, tpl model.ColumnTemplate) []model.LineItem {
	source := filepath.Base(frame.Source)
	items := make([]model.LineItem, 0, len(frame.Rows))
	for i := range frame.Rows {
		revenue, _ := parse.Revenue(frame.Value(i, tpl.RevenueColumn))
		date, ok := parse.Date(frame.Value(i, tpl.DateColumn))
		if !ok {
			continue
		}
		item := model.LineItem{
			Track:      strings.TrimSpace(frame.Value(i, tpl.TrackColumn)),
			Revenue:    revenue,
			Date:       date,
			SourceFile: source,
		}
		if tpl.ArtistColumn != "" {
			item.Artist = strings.TrimSpace(frame.Value(i, tpl.ArtistColumn))
		}
		if tpl.UPCColumn != "" {
			item.UPC = strings.TrimSpace(frame.Value(i, tpl.UPCColumn))
		}
		if item.Valid() {
			items = append(items, item)
		}
	}
	return items
}

func filter(items []model.LineItem, req Request) []model.LineItem {
	tracks := toSet(req.Tracks)
	artists := toSet(req.Artists)
	if req.Template.ArtistColumn == "" {
		artists = nil
	}

	var kept []model.LineItem
	for _, item := range items {
		if tracks != nil && !tracks[item.Track] {
			continue
		}
		if artists != nil && !artists[item.Artist] {
			continue
		}
		if !req.From.IsZero() && item.Date.Before(req.From) {
			continue
		}
		if !req.To.IsZero() && item.Date.After(req.To) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

type groupKey struct {
	period string
	track  string
}

func groupAndTotal(items []model.LineItem, req Request) *Result {
	type group struct {
		total  decimal.Decimal
		artist string
		upc    string
	}
	groups := make(map[groupKey]*group)
	periodTotals := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, item := range items {
		period := model.PeriodKey(item.Date, req.Grouping)
		key := groupKey{period: period, track: item.Track}
		g, ok := groups[key]
		if !ok {
			g = &group{artist: item.Artist, upc: item.UPC}
			groups[key] = g
		}
		g.total = g.total.Add(item.Revenue)
		periodTotals[period] = periodTotals[period].Add(item.Revenue)
		grand = grand.Add(item.Revenue)
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].period != keys[j].period {
			return keys[i].period < keys[j].period
		}
		return keys[i].track < keys[j].track
	})

	rows := make([]model.AggregateRow, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		formatted := model.FormatAmount(g.total, req.Currency)
		rows = append(rows, model.AggregateRow{
			Period:        key.period,
			Track:         key.track,
			Artist:        g.artist,
			UPC:           g.upc,
			TotalRevenue:  formatted,
			ArtistRevenue: formatted, // no split logic: artist revenue mirrors the total
		})
	}

	totals := make([]PeriodTotal, 0, len(periodTotals))
	for period, total := range periodTotals {
		totals = append(totals, PeriodTotal{Period: period, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Period < totals[j].Period })

	net := grand.Sub(req.Advances)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return &Result{
		Rows:         rows,
		PeriodTotals: totals,
		GrandTotal:   grand,
		NetTotal:     net,
		Currency:     req.Currency,
		Grouping:     req.Grouping,
		LineItems:    len(items),
	}
}

func summarize(result *Result, req Request, items []model.LineItem) []string {
	rangeText := "all dates"
	if !req.From.IsZero() || !req.To.IsZero() {
		rangeText = fmt.Sprintf("%s to %s", req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))
	}
	trackFilter := "All"
	if len(req.Tracks) > 0 {
		trackFilter = strings.Join(req.Tracks, ", ")
	}
	artistFilter := "All"
	if len(req.Artists) > 0 {
		artistFilter = strings.Join(req.Artists, ", ")
	}

	return []string{
		"Revenue Analysis Summary:",
		"------------------------",
		fmt.Sprintf("Period: %s", rangeText),
		fmt.Sprintf("Grouped by: %s", req.Grouping),
		"",
		fmt.Sprintf("Total Revenue: %s", model.FormatAmount(result.GrandTotal, req.Currency)),
		fmt.Sprintf("Advances to Recoup: %s", model.FormatAmount(req.Advances, req.Currency)),
		fmt.Sprintf("Net Revenue: %s", model.FormatAmount(result.NetTotal, req.Currency)),
		"",
		"Filters applied:",
		fmt.Sprintf("- Tracks: %s", trackFilter),
		fmt.Sprintf("- Artists: %s", artistFilter),
		"",
		fmt.Sprintf("Number of transactions: %d", len(items)),
	}
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
