package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/whalesrecords/royalty/internal/config"
	"github.com/whalesrecords/royalty/internal/csvio"
	"github.com/whalesrecords/royalty/internal/history"
	"github.com/whalesrecords/royalty/internal/parse"
	"github.com/whalesrecords/royalty/internal/templates"
)

func loadConfig(path string) (*config.Config, error) {
	return config.LoadOrDefault(path)
}

func openTemplates(cfg *config.Config) (*templates.Store, error) {
	store, err := templates.Open(cfg.TemplatesPath())
	if err != nil {
		return nil, fmt.Errorf("opening template store: %w", err)
	}
	return store, nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	return store, nil
}

func keywordsFor(cfg *config.Config) templates.Keywords {
	return templates.DefaultKeywords().Merge(cfg.Keywords)
}

// confirm asks a y/n question on in and treats anything but yes as no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// parseDateFlag converts a date flag value, with empty meaning unset.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, ok := parse.Date(value)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --%s date %q", name, value)
	}
	return d, nil
}

// collectFiles merges explicit file arguments with a scanned directory.
func collectFiles(args []string, dir string) ([]string, error) {
	files := append([]string(nil), args...)
	if dir != "" {
		scanned, err := csvio.ScanDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		files = append(files, scanned...)
	}
	return files, nil
}
