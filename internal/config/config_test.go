package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Label.Name = "Test Label"
	cfg.Label.StatementPrefix = "Test Label"
	cfg.Keywords = map[string][]string{"revenue": {"net receipts"}}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Label.Name, got.Label.Name)
	assert.Equal(t, cfg.Label.StatementPrefix, got.Label.StatementPrefix)
	assert.Equal(t, cfg.Currencies.Default, got.Currencies.Default)
	assert.Equal(t, cfg.Currencies.Available, got.Currencies.Available)
	require.Contains(t, got.Keywords, "revenue")
	assert.Equal(t, []string{"net receipts"}, got.Keywords["revenue"])
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Whales Records", cfg.Label.Name)
	assert.Equal(t, "Whales Records", cfg.Label.StatementPrefix)
	assert.Equal(t, "EUR", cfg.Currencies.Default)
	assert.Contains(t, cfg.Currencies.Available, "USD")
	assert.Equal(t, filepath.Join("data", "templates.json"), cfg.TemplatesPath())
	assert.Equal(t, filepath.Join("data", "analysis_history.json"), cfg.HistoryPath())
	assert.Equal(t, filepath.Join("data", "exports"), cfg.ExportDir())
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := os.WriteFile(path, []byte("label:\n  name: Indie Label\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Indie Label", cfg.Label.Name)
	assert.Equal(t, "Indie Label", cfg.Label.StatementPrefix)
	assert.Equal(t, "EUR", cfg.Currencies.Default)
	assert.Equal(t, filepath.Join("data", "templates.json"), cfg.TemplatesPath())
}

func TestAbsolutePathsKept(t *testing.T) {
	cfg := Default()
	cfg.Data.Templates = "/var/lib/royalty/templates.json"
	assert.Equal(t, "/var/lib/royalty/templates.json", cfg.TemplatesPath())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "Whales Records", cfg.Label.Name)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Whales Records")
	assert.Contains(t, contents, "statement_prefix: Whales Records")
	assert.Contains(t, contents, "default: EUR")
	assert.Contains(t, contents, "templates: templates.json")
}
