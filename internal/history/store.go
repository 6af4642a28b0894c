// Package history persists named analysis results between sessions.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/whalesrecords/royalty/internal/model"
)

// Store maps analysis names to saved results. Entries are only mutated by
// explicit save and delete; nothing expires them. The backing JSON file is
// rewritten wholesale on every change.
type Store struct {
	path    string
	entries map[string]model.AnalysisResult
}

// Open reads an analysis history from path. A missing file yields an empty
// store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]model.AnalysisResult)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if err := sonic.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return s, nil
}

// Save rewrites the backing file with the current entries.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	data, err := sonic.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Get returns a saved analysis by name.
func (s *Store) Get(name string) (model.AnalysisResult, bool) {
	entry, ok := s.entries[name]
	return entry, ok
}

// Put adds or replaces a saved analysis.
func (s *Store) Put(name string, entry model.AnalysisResult) {
	s.entries[name] = entry
}

// Delete removes a saved analysis.
func (s *Store) Delete(name string) bool {
	if _, ok := s.entries[name]; !ok {
		return false
	}
	delete(s.entries, name)
	return true
}

// Names returns all analysis names, newest-style reverse-sorted to match
// how the history is listed.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// Len returns the number of saved analyses.
func (s *Store) Len() int { return len(s.entries) }

// DefaultName builds the auto-generated analysis name used when the user
// does not supply one: "2024-01-31 15:04 [template]".
func DefaultName(now time.Time, templateName string) string {
	if templateName == "" {
		templateName = "No Template"
	}
	return fmt.Sprintf("%s [%s]", now.Format("2006-01-02 15:04"), templateName)
}
