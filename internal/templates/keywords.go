package templates

import "strings"

// Keywords maps a field role to the substrings that identify columns of
// that role beyond the role name itself.
type Keywords map[string][]string

// DefaultKeywords returns the built-in keyword families seen across
// distributor exports.
func DefaultKeywords() Keywords {
	return Keywords{
		"track":   {"title", "song", "tc song id"},
		"artist":  {"performer", "artist name", "band"},
		"revenue": {"amount", "earnings", "earned", "income"},
		"date":    {"period", "sale date", "transaction date", "posted"},
		"upc":     {"barcode", "isrc", "identifier"},
	}
}

// Merge adds extra keywords per role, returning the receiver for chaining.
func (k Keywords) Merge(extra map[string][]string) Keywords {
	for role, words := range extra {
		k[role] = append(k[role], words...)
	}
	return k
}

// matchesRole reports whether a column name looks like the given role,
// either by containing the role name or one of its keywords.
func (k Keywords) matchesRole(role, column string) bool {
	col := strings.ToLower(column)
	if strings.Contains(col, role) {
		return true
	}
	for _, word := range k[role] {
		if strings.Contains(col, word) {
			return true
		}
	}
	return false
}
