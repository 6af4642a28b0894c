package templates

import (
	"strings"

	"github.com/whalesrecords/royalty/internal/model"
)

// MatchThreshold is the minimum score at which a stored template is offered
// for a newly imported file.
const MatchThreshold = 0.70

// fieldOrder fixes the iteration order over template roles.
var fieldOrder = []string{"track", "artist", "upc", "revenue", "date"}

// Score rates how well a template fits a file's header set, in [0,1].
// Each non-empty template field contributes 1.0 for an exact
// (case-insensitive) column match, 0.8 when some column merely looks like
// the field's role, and 0 otherwise; the result is the mean over non-empty
// fields. A template with no fields scores 0.
func Score(tpl model.ColumnTemplate, columns []string, kw Keywords) float64 {
	lower := make([]string, len(columns))
	for i, c := range columns {
		lower[i] = strings.ToLower(c)
	}

	fields := tpl.Fields()
	var total int
	var score float64
	for _, role := range fieldOrder {
		value := fields[role]
		if value == "" {
			continue
		}
		total++
		if containsString(lower, strings.ToLower(value)) {
			score += 1.0
			continue
		}
		for _, col := range lower {
			if kw.matchesRole(role, col) {
				score += 0.8
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return score / float64(total)
}

// Suggest builds a best-effort template for a header set: per role, the
// first column containing the role name wins, then the first column
// matching the role's keyword family.
func Suggest(columns []string, kw Keywords) model.ColumnTemplate {
	pick := func(role string) string {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), role) {
				return col
			}
		}
		for _, col := range columns {
			for _, word := range kw[role] {
				if strings.Contains(strings.ToLower(col), word) {
					return col
				}
			}
		}
		return ""
	}

	return model.ColumnTemplate{
		TrackColumn:   pick("track"),
		ArtistColumn:  pick("artist"),
		UPCColumn:     pick("upc"),
		RevenueColumn: pick("revenue"),
		DateColumn:    pick("date"),
	}
}

// Validate checks that a template can drive an aggregation run.
func Validate(tpl model.ColumnTemplate) error {
	if tpl.TrackColumn == "" || tpl.RevenueColumn == "" || tpl.DateColumn == "" {
		return &ValidationError{Reason: "track, revenue and date columns are required"}
	}
	if tpl.ArtistColumn != "" && tpl.ArtistColumn == tpl.RevenueColumn {
		return &ValidationError{Reason: "artist column cannot equal revenue column"}
	}
	if tpl.UPCColumn != "" && tpl.UPCColumn == tpl.RevenueColumn {
		return &ValidationError{Reason: "UPC column cannot equal revenue column"}
	}
	return nil
}

// ValidationError reports an unusable column mapping.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid column mapping: " + e.Reason
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
