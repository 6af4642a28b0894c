package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/whalesrecords/royalty/internal/model"
)

// Store holds the named column templates for a session. The in-memory map
// is the source of truth; Save rewrites the backing JSON file wholesale.
// Single-threaded access is assumed, as everywhere in the pipeline.
type Store struct {
	path      string
	templates map[string]model.ColumnTemplate
}

// Open reads a template store from path. A missing file yields an empty
// store; a corrupt file is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, templates: make(map[string]model.ColumnTemplate)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	if err := sonic.Unmarshal(data, &s.templates); err != nil {
		return nil, fmt.Errorf("parsing templates %s: %w", path, err)
	}
	return s, nil
}

// Save rewrites the backing file with the current template set.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating templates dir: %w", err)
	}
	data, err := sonic.MarshalIndent(s.templates, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling templates: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing templates: %w", err)
	}
	return nil
}

// Get returns a template by name.
func (s *Store) Get(name string) (model.ColumnTemplate, bool) {
	tpl, ok := s.templates[name]
	return tpl, ok
}

// Put adds or replaces a template.
func (s *Store) Put(name string, tpl model.ColumnTemplate) {
	s.templates[name] = tpl
}

// Delete removes a template. Saved analyses referencing it keep working;
// the reference is by name only.
func (s *Store) Delete(name string) bool {
	if _, ok := s.templates[name]; !ok {
		return false
	}
	delete(s.templates, name)
	return true
}

// Rename moves a template to a new name, replacing any existing template
// under that name.
func (s *Store) Rename(oldName, newName string) error {
	tpl, ok := s.templates[oldName]
	if !ok {
		return fmt.Errorf("no template named %q", oldName)
	}
	if newName == "" || newName == oldName {
		return nil
	}
	delete(s.templates, oldName)
	s.templates[newName] = tpl
	return nil
}

// Names returns all template names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored templates.
func (s *Store) Len() int { return len(s.templates) }

// BestMatch scores every stored template against a header set and returns
// the best one. Names are visited in sorted order so ties resolve
// deterministically to the first name.
func (s *Store) BestMatch(columns []string, kw Keywords) (string, float64) {
	var bestName string
	var bestScore float64
	for _, name := range s.Names() {
		score := Score(s.templates[name], columns, kw)
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}
	return bestName, bestScore
}

// FindByMapping returns the name of the template whose mapped columns match
// the given template exactly, mirroring how saved analyses are labelled.
func (s *Store) FindByMapping(tpl model.ColumnTemplate) (string, bool) {
	for _, name := range s.Names() {
		t := s.templates[name]
		if t.TrackColumn == tpl.TrackColumn &&
			t.RevenueColumn == tpl.RevenueColumn &&
			t.DateColumn == tpl.DateColumn &&
			t.ArtistColumn == tpl.ArtistColumn &&
			t.UPCColumn == tpl.UPCColumn {
			return name, true
		}
	}
	return "", false
}
