package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalesrecords/royalty/internal/model"
	"github.com/whalesrecords/royalty/internal/templates"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func basicTemplate() model.ColumnTemplate {
	return model.ColumnTemplate{
		TrackColumn:   "Track",
		RevenueColumn: "Revenue",
		DateColumn:    "Date",
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRunTwoFilesMixedDelimiters(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Track,Revenue,Date\n\"Song A\",10.50,2024-01-15\n")
	b := writeFile(t, dir, "b.csv", "Track;Revenue;Date\nSong A;5.25;2024-02-20\n")

	result, err := Run(Request{
		Files:    []string{a, b},
		Template: basicTemplate(),
		Grouping: model.GroupByMonth,
		Currency: "EUR",
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "2024-01", result.Rows[0].Period)
	assert.Equal(t, "Song A", result.Rows[0].Track)
	assert.Equal(t, "10.50 EUR", result.Rows[0].TotalRevenue)
	assert.Equal(t, "2024-02", result.Rows[1].Period)
	assert.Equal(t, "5.25 EUR", result.Rows[1].TotalRevenue)
	assert.True(t, dec("15.75").Equal(result.GrandTotal))
	assert.Equal(t, result.Rows[0].TotalRevenue, result.Rows[0].ArtistRevenue)
}

func TestRunGroupsAndSorts(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv",
		"Track,Revenue,Date\nB,2.00,2024-01-10\nA,1.00,2024-01-20\nB,3.00,2024-01-25\nA,4.00,2024-02-01\n")

	result, err := Run(Request{
		Files:    []string{file},
		Template: basicTemplate(),
		Grouping: model.GroupByMonth,
		Currency: "EUR",
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "A", result.Rows[0].Track)
	assert.Equal(t, "5.00 EUR", result.Rows[1].TotalRevenue) // B in 2024-01
	assert.Equal(t, "2024-02", result.Rows[2].Period)

	require.Len(t, result.PeriodTotals, 2)
	assert.True(t, dec("6").Equal(result.PeriodTotals[0].Total))
	assert.True(t, dec("4").Equal(result.PeriodTotals[1].Total))
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv",
		"Track,Revenue,Date\nB,2.00,2024-01-10\nA,1.00,2024-01-20\n")
	req := Request{Files: []string{file}, Template: basicTemplate(), Currency: "EUR"}

	first, err := Run(req)
	require.NoError(t, err)
	second, err := Run(req)
	require.NoError(t, err)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestRunDropsInvalidRows(t *testing.T) {
	dir := t.TempDir()
	// Empty track, zero revenue, garbage date: all dropped.
	file := writeFile(t, dir, "a.csv",
		"Track,Revenue,Date\n,5.00,2024-01-10\nA,0,2024-01-11\nA,junk,2024-01-12\nA,2.50,soon\nA,2.50,2024-01-13\n")

	result, err := Run(Request{Files: []string{file}, Template: basicTemplate(), Currency: "EUR"})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2.50 EUR", result.Rows[0].TotalRevenue)
	assert.Equal(t, 1, result.LineItems)
}

func TestRunFilters(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv",
		"Track,Artist,Revenue,Date\nA,X,1.00,2024-01-10\nB,Y,2.00,2024-01-20\nA,X,4.00,2024-03-01\n")
	tpl := basicTemplate()
	tpl.ArtistColumn = "Artist"

	result, err := Run(Request{
		Files:    []string{file},
		Template: tpl,
		Currency: "EUR",
		Tracks:   []string{"A"},
		Artists:  []string{"X"},
		From:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "A", result.Rows[0].Track)
	assert.Equal(t, "X", result.Rows[0].Artist)
	assert.True(t, dec("1").Equal(result.GrandTotal))
}

func TestRunInvertedRange(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv", "Track,Revenue,Date\nA,1.00,2024-01-10\n")

	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := Run(Request{
		Files:    []string{file},
		Template: basicTemplate(),
		Currency: "EUR",
		From:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:       to,
	})
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, to.AddDate(0, -1, 0).Equal(rerr.AdjustedFrom))
}

func TestRunValidation(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv", "Track,Revenue,Date\nA,1.00,2024-01-10\n")

	_, err := Run(Request{Files: []string{file}, Template: model.ColumnTemplate{TrackColumn: "Track"}})
	var verr *templates.ValidationError
	assert.ErrorAs(t, err, &verr)

	tpl := basicTemplate()
	tpl.ArtistColumn = tpl.RevenueColumn
	_, err = Run(Request{Files: []string{file}, Template: tpl})
	assert.ErrorAs(t, err, &verr)

	_, err = Run(Request{Template: basicTemplate()})
	assert.ErrorAs(t, err, &verr)
}

func TestRunSkipsBadFilesAndFailsWhenAllBad(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "Track,Revenue,Date\nA,1.00,2024-01-10\n")
	missing := filepath.Join(dir, "missing.csv")

	result, err := Run(Request{
		Files:    []string{missing, good},
		Template: basicTemplate(),
		Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.NotEmpty(t, result.Warnings)

	_, err = Run(Request{Files: []string{missing}, Template: basicTemplate()})
	assert.ErrorIs(t, err, ErrNoValidData)
}

func TestRunNetTotal(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv", "Track,Revenue,Date\nA,10.00,2024-01-10\n")

	result, err := Run(Request{
		Files:    []string{file},
		Template: basicTemplate(),
		Currency: "EUR",
		Advances: dec("4"),
	})
	require.NoError(t, err)
	assert.True(t, dec("6").Equal(result.NetTotal))

	result, err = Run(Request{
		Files:    []string{file},
		Template: basicTemplate(),
		Currency: "EUR",
		Advances: dec("25"),
	})
	require.NoError(t, err)
	assert.True(t, result.NetTotal.IsZero())
}

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Track,Artist,Revenue,Date\nb song,Zed,1,2024-01-01\nA Song,ann,2,2024-01-02\n")
	tpl := basicTemplate()
	tpl.ArtistColumn = "Artist"

	tracks, artists := Enumerate([]string{a}, tpl)
	assert.Equal(t, []string{"A Song", "b song"}, tracks)
	assert.Equal(t, []string{"ann", "Zed"}, artists)
}
