package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/parse"
)

const sourceFileColumn = "Source File"

// MergeTracks combines the loaded frames into one CSV keeping only rows
// whose track cell is in tracks, preserving every original column plus a
// trailing Source File column. Rows sort by parsed date then track when
// dateColumn is set, by track alone otherwise. Returns the number of data
// rows written.
func MergeTracks(w io.Writer, frames []*csvio.Frame, trackColumn, dateColumn string, tracks []string) (int, error) {
	if trackColumn == "" {
		return 0, fmt.Errorf("no track column selected")
	}
	if len(tracks) == 0 {
		return 0, fmt.Errorf("no tracks selected")
	}

	selected := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		selected[strings.TrimSpace(t)] = true
	}

	columns := unionColumns(frames)

	type mergedRow struct {
		date  time.Time
		track string
		cells map[string]string
	}
	var merged []mergedRow
	for _, frame := range frames {
		base := filepath.Base(frame.Source)
		for i := range frame.Rows {
			track := strings.TrimSpace(frame.Value(i, trackColumn))
			if !selected[track] {
				continue
			}
			cells := make(map[string]string, len(columns)+1)
			for _, col := range frame.Columns {
				cells[col] = frame.Value(i, col)
			}
			cells[sourceFileColumn] = base

			row := mergedRow{track: track, cells: cells}
			if dateColumn != "" {
				row.date, _ = parse.Date(frame.Value(i, dateColumn))
			}
			merged = append(merged, row)
		}
	}
	if len(merged) == 0 {
		return 0, fmt.Errorf("no data found for selected tracks")
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if dateColumn != "" && !merged[i].date.Equal(merged[j].date) {
			return merged[i].date.Before(merged[j].date)
		}
		return merged[i].track < merged[j].track
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return 0, err
	}
	record := make([]string, len(columns))
	for _, row := range merged {
		for i, col := range columns {
			record[i] = row.cells[col]
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(merged), cw.Error()
}

// MergeFileName builds the default output name for a merged-tracks export.
func MergeFileName(now time.Time) string {
	return fmt.Sprintf("merged_tracks_%s.csv", now.Format("20060102_150405"))
}

// unionColumns collects every column across the frames in first-seen
// order, with Source File appended last.
func unionColumns(frames []*csvio.Frame) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, frame := range frames {
		for _, col := range frame.Columns {
			if seen[col] {
				continue
			}
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return append(columns, sourceFileColumn)
}
