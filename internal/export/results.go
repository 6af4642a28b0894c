// Package export writes analysis output to CSV and xlsx files: the
// aggregate results table, per-artist royalty statements with quarterly
// totals, and a raw merge of the input files filtered to selected tracks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/whalesrecords/royalty/internal/model"
)

// WriteResults writes aggregate rows as CSV. The Artist, Source and UPC
// columns appear only when at least one row carries a value. Revenue cells
// are written as plain two-decimal numbers with the currency suffix
// stripped.
func WriteResults(w io.Writer, rows []model.AggregateRow) error {
	headers, project := resultColumns(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(project(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsXLSX writes the same table as WriteResults into the first
// sheet of a new workbook at path.
func WriteResultsXLSX(path string, rows []model.AggregateRow) error {
	headers, project := resultColumns(rows)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, col+"1", h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for i, cell := range project(row) {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), cell); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// ResultsFileName builds the default export name for a results table.
func ResultsFileName(now time.Time, templateName string) string {
	if templateName == "" {
		templateName = "No Template"
	}
	return fmt.Sprintf("revenue_analysis_%s_%s.csv", now.Format("20060102_1504"), templateName)
}

// resultColumns picks the header set for a row slice and returns a
// projection from a row to its cells in header order.
func resultColumns(rows []model.AggregateRow) ([]string, func(model.AggregateRow) []string) {
	var hasArtist, hasSource, hasUPC bool
	for _, row := range rows {
		hasArtist = hasArtist || row.Artist != ""
		hasSource = hasSource || row.Source != ""
		hasUPC = hasUPC || row.UPC != ""
	}

	headers := []string{"Period"}
	if hasArtist {
		headers = append(headers, "Artist")
	}
	if hasSource {
		headers = append(headers, "Source")
	}
	if hasUPC {
		headers = append(headers, "UPC")
	}
	headers = append(headers, "Track", "Total Revenue", "Artist Revenue")

	project := func(row model.AggregateRow) []string {
		cells := []string{row.Period}
		if hasArtist {
			cells = append(cells, row.Artist)
		}
		if hasSource {
			cells = append(cells, row.Source)
		}
		if hasUPC {
			cells = append(cells, row.UPC)
		}
		return append(cells, row.Track, plainAmount(row.TotalRevenue), plainAmount(row.ArtistRevenue))
	}
	return headers, project
}

// plainAmount strips the currency suffix from an "amount CUR" cell and
// normalizes to two decimals. Cells that do not parse pass through as-is.
func plainAmount(s string) string {
	amount, _, err := model.ParseAmount(s)
	if err != nil {
		return s
	}
	return amount.StringFixed(2)
}
