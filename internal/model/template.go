package model

// ColumnTemplate maps canonical roles onto a specific distributor's column
// names. Track, revenue and date are required for an aggregation to run;
// artist and UPC are optional. Source is a free-form distributor label used
// for provenance when consolidating analyses.
type ColumnTemplate struct {
	TrackColumn   string `json:"track_column"`
	ArtistColumn  string `json:"artist_column"`
	UPCColumn     string `json:"upc_column"`
	RevenueColumn string `json:"revenue_column"`
	DateColumn    string `json:"date_column"`
	Source        string `json:"source,omitempty"`
}

// Usable reports whether the template carries the three required mappings.
func (t ColumnTemplate) Usable() bool {
	return t.TrackColumn != "" && t.RevenueColumn != "" && t.DateColumn != ""
}

// SourceLabel returns the distributor label, falling back to the template
// name when no explicit source is set.
func (t ColumnTemplate) SourceLabel(name string) string {
	if t.Source != "" {
		return t.Source
	}
	return name
}

// Fields returns the role -> column pairs in a fixed order. Roles with no
// mapped column are included with an empty value.
func (t ColumnTemplate) Fields() map[string]string {
	return map[string]string{
		"track":   t.TrackColumn,
		"artist":  t.ArtistColumn,
		"upc":     t.UPCColumn,
		"revenue": t.RevenueColumn,
		"date":    t.DateColumn,
	}
}
