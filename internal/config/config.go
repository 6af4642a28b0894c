package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the expected configuration file name.
const FileName = "royalty.yaml"

// Config represents the top-level royalty.yaml configuration.
type Config struct {
	Label      LabelConfig         `yaml:"label"`
	Data       DataConfig          `yaml:"data"`
	Currencies CurrencyConfig      `yaml:"currencies"`
	Keywords   map[string][]string `yaml:"keywords,omitempty"`
}

// LabelConfig identifies the record label issuing statements.
type LabelConfig struct {
	Name            string `yaml:"name"`
	StatementPrefix string `yaml:"statement_prefix"`
}

// DataConfig holds the on-disk layout. Relative paths resolve against the
// config file's directory.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	Templates string `yaml:"templates"`
	History   string `yaml:"history"`
	Exports   string `yaml:"exports"`
}

// CurrencyConfig lists the selectable currency labels.
type CurrencyConfig struct {
	Default   string   `yaml:"default"`
	Available []string `yaml:"available,omitempty"`
}

// Load reads a royalty.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault reads the config at path, falling back to Default when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	cfg := &Config{
		Label: LabelConfig{
			Name:            "Whales Records",
			StatementPrefix: "Whales Records",
		},
		Currencies: CurrencyConfig{
			Default:   "EUR",
			Available: []string{"EUR", "USD", "GBP"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.Templates == "" {
		c.Data.Templates = "templates.json"
	}
	if c.Data.History == "" {
		c.Data.History = "analysis_history.json"
	}
	if c.Data.Exports == "" {
		c.Data.Exports = "exports"
	}
	if c.Currencies.Default == "" {
		c.Currencies.Default = "EUR"
	}
	if c.Label.StatementPrefix == "" {
		c.Label.StatementPrefix = c.Label.Name
	}
}

// TemplatesPath resolves the template store location.
func (c *Config) TemplatesPath() string { return c.resolve(c.Data.Templates) }

// HistoryPath resolves the analysis history store location.
func (c *Config) HistoryPath() string { return c.resolve(c.Data.History) }

// ExportDir resolves the export output directory.
func (c *Config) ExportDir() string { return c.resolve(c.Data.Exports) }

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Data.Dir, path)
}
