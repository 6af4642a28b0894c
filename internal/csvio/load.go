package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileReadError marks a file as unreadable. Callers skip the file and
// continue with the rest of the batch.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// LoadFrame reads a CSV file with the auto-detected delimiter and returns a
// cleaned frame. Malformed lines are skipped and recorded as warnings on the
// frame. When the read produces a single column, the other delimiter is
// tried once, which recovers from header lines that fooled the detector.
func LoadFrame(path string) (*Frame, error) {
	delim := DetectDelimiter(path)

	frame, err := readFrame(path, delim)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	if len(frame.Columns) == 1 {
		if retry, err := readFrame(path, otherDelimiter(delim)); err == nil && len(retry.Columns) > 1 {
			frame = retry
		}
	}

	frame.clean()
	return frame, nil
}

func readFrame(path string, delim rune) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	frame := &Frame{Columns: header, Source: path}
	line := 1
	for {
		line++
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			frame.Warnings = append(frame.Warnings, fmt.Sprintf("%s: skipping line %d: %v", filepath.Base(path), line, err))
			continue
		}
		for i, cell := range record {
			record[i] = strings.TrimSpace(cell)
		}
		frame.Rows = append(frame.Rows, record)
	}
	return frame, nil
}

// ScanDir returns the CSV files directly under dir, sorted by name.
// A missing directory yields an empty result rather than an error.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
