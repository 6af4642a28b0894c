package csvio

import "strings"

// Frame is a cleaned in-memory table: an ordered header plus data rows.
// Rows are padded to the header width, so indexing by column is safe.
type Frame struct {
	Columns  []string
	Rows     [][]string
	Source   string   // originating file path
	Warnings []string // malformed lines skipped during the read
}

// Index returns the position of a column, or -1 if absent.
func (f *Frame) Index(column string) int {
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the frame contains the named column.
func (f *Frame) HasColumn(column string) bool {
	return f.Index(column) >= 0
}

// Value returns the cell at (row, column), or "" when the column is absent.
func (f *Frame) Value(row int, column string) string {
	i := f.Index(column)
	if i < 0 || row < 0 || row >= len(f.Rows) {
		return ""
	}
	return f.Rows[row][i]
}

// UniqueValues returns the distinct non-empty trimmed values of a column,
// in first-seen order.
func (f *Frame) UniqueValues(column string) []string {
	i := f.Index(column)
	if i < 0 {
		return nil
	}
	seen := make(map[string]bool)
	var values []string
	for _, row := range f.Rows {
		v := strings.TrimSpace(row[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// clean drops fully-empty rows and fully-empty columns and pads short rows.
func (f *Frame) clean() {
	// Pad rows first so column scans are uniform.
	for i, row := range f.Rows {
		for len(row) < len(f.Columns) {
			row = append(row, "")
		}
		f.Rows[i] = row[:len(f.Columns)]
	}

	// Drop rows with no content.
	rows := f.Rows[:0]
	for _, row := range f.Rows {
		if !rowEmpty(row) {
			rows = append(rows, row)
		}
	}
	f.Rows = rows

	// Drop columns that are empty in every remaining row. A headers-only
	// frame keeps its columns so mapping validation can still run.
	if len(f.Rows) == 0 {
		return
	}
	var keep []int
	for i := range f.Columns {
		if columnHasData(f.Rows, i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(f.Columns) {
		return
	}
	cols := make([]string, 0, len(keep))
	for _, i := range keep {
		cols = append(cols, f.Columns[i])
	}
	for r, row := range f.Rows {
		next := make([]string, 0, len(keep))
		for _, i := range keep {
			next = append(next, row[i])
		}
		f.Rows[r] = next
	}
	f.Columns = cols
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func columnHasData(rows [][]string, i int) bool {
	for _, row := range rows {
		if i < len(row) && strings.TrimSpace(row[i]) != "" {
			return true
		}
	}
	return false
}
