package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalesrecords/royalty/internal/model"
)

func sampleResult() model.AnalysisResult {
	return model.AnalysisResult{
		Date:     time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Template: "tunecore",
		Results: []model.AggregateRow{
			{Period: "2024-01", Track: "Song A", TotalRevenue: "10.50 EUR", ArtistRevenue: "10.50 EUR"},
		},
		Summary: []string{"Revenue Analysis Summary:", "Total Revenue: 10.50 EUR"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis_history.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	s.Put("march run", sampleResult())
	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	got, ok := reopened.Get("march run")
	require.True(t, ok)
	assert.Equal(t, "tunecore", got.Template)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "10.50 EUR", got.Results[0].TotalRevenue)
	assert.True(t, sampleResult().Date.Equal(got.Date))
}

func TestStoreDelete(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "h.json"))
	require.NoError(t, err)

	s.Put("a", sampleResult())
	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
}

func TestNamesReverseSorted(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "h.json"))
	require.NoError(t, err)

	s.Put("2024-01-01 10:00 [a]", sampleResult())
	s.Put("2024-03-01 10:00 [b]", sampleResult())
	assert.Equal(t, []string{"2024-03-01 10:00 [b]", "2024-01-01 10:00 [a]"}, s.Names())
}

func TestDefaultName(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 12:30 [tunecore]", DefaultName(now, "tunecore"))
	assert.Equal(t, "2024-03-01 12:30 [No Template]", DefaultName(now, ""))
}
