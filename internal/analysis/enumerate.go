package analysis

import (
	"sort"
	"strings"

	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/model"
)

// Enumerate collects the distinct track and artist values across a set of
// files under a mapping, sorted case-insensitively. Unreadable files are
// skipped. Used to present filter choices before a run.
func Enumerate(files []string, tpl model.ColumnTemplate) (tracks, artists []string) {
	trackSet := make(map[string]bool)
	artistSet := make(map[string]bool)
	for _, file := range files {
		frame, err := csvio.LoadFrame(file)
		if err != nil {
			continue
		}
		for _, v := range frame.UniqueValues(tpl.TrackColumn) {
			trackSet[v] = true
		}
		if tpl.ArtistColumn != "" {
			for _, v := range frame.UniqueValues(tpl.ArtistColumn) {
				artistSet[v] = true
			}
		}
	}
	return sortedKeys(trackSet), sortedKeys(artistSet)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	return keys
}
