package parse

import (
	"strings"
	"time"
)

// dateLayouts is the ordered list of accepted date formats. Order is the
// disambiguation policy: day-first layouts precede month-first, so an
// ambiguous "01/02/2024" reads as the 1st of February.
var dateLayouts = []string{
	"2006-01-02", // ISO
	"02/01/2006", // day first
	"01/02/2006", // month first
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"20060102",
	"Jan 2006",
	"January 2006",
	"2006-01",
	"01/2006",
	"01-2006",
}

// fallbackLayouts is the best-effort pass tried after the priority list.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006.01.02",
}

// Date converts a raw date cell to a calendar date. The first layout in the
// priority list that parses wins; a best-effort layout pass follows. The
// second return is false when nothing matched, in which case the owning row
// is expected to be dropped downstream.
func Date(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
