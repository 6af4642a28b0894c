package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whalesrecords/royalty/internal/model"
)

func TestScoreExactMatch(t *testing.T) {
	tpl := model.ColumnTemplate{
		TrackColumn:   "Track",
		RevenueColumn: "Revenue",
		DateColumn:    "Date",
	}
	score := Score(tpl, []string{"track", "REVENUE", "Date"}, DefaultKeywords())
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreKeywordMatch(t *testing.T) {
	tpl := model.ColumnTemplate{
		TrackColumn:   "Track",
		RevenueColumn: "Revenue",
	}
	// "Song Title" matches the track family, "Total Earned" the revenue
	// family; neither is an exact column match.
	score := Score(tpl, []string{"Song Title", "Total Earned"}, DefaultKeywords())
	assert.InDelta(t, 0.8, score, 1e-9)
}

func TestScoreEmptyTemplate(t *testing.T) {
	score := Score(model.ColumnTemplate{}, []string{"Track"}, DefaultKeywords())
	assert.Zero(t, score)
}

func TestScoreMonotonic(t *testing.T) {
	columns := []string{"Track", "Revenue", "Date", "Artist"}
	kw := DefaultKeywords()

	base := model.ColumnTemplate{TrackColumn: "Track", RevenueColumn: "Revenue"}
	before := Score(base, columns, kw)

	// Adding a field that matches never decreases the score.
	base.DateColumn = "Date"
	assert.GreaterOrEqual(t, Score(base, columns, kw), before)
}

func TestSuggest(t *testing.T) {
	columns := []string{"Song Title", "Performer", "Total Earned", "Sale Date", "Barcode"}
	tpl := Suggest(columns, DefaultKeywords())

	assert.Equal(t, "Song Title", tpl.TrackColumn)
	assert.Equal(t, "Performer", tpl.ArtistColumn)
	assert.Equal(t, "Total Earned", tpl.RevenueColumn)
	assert.Equal(t, "Sale Date", tpl.DateColumn)
	assert.Equal(t, "Barcode", tpl.UPCColumn)
}

func TestSuggestPrefersRoleName(t *testing.T) {
	columns := []string{"Song Title", "Track Name"}
	tpl := Suggest(columns, DefaultKeywords())
	// Role-name containment wins over the keyword family.
	assert.Equal(t, "Track Name", tpl.TrackColumn)
}

func TestValidate(t *testing.T) {
	valid := model.ColumnTemplate{TrackColumn: "t", RevenueColumn: "r", DateColumn: "d"}
	assert.NoError(t, Validate(valid))

	missing := model.ColumnTemplate{TrackColumn: "t"}
	assert.Error(t, Validate(missing))

	clash := valid
	clash.ArtistColumn = "r"
	err := Validate(clash)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	upcClash := valid
	upcClash.UPCColumn = "r"
	assert.Error(t, Validate(upcClash))
}

func TestKeywordsMerge(t *testing.T) {
	kw := DefaultKeywords().Merge(map[string][]string{"track": {"recording"}})
	assert.True(t, kw.matchesRole("track", "Recording Name"))
}
