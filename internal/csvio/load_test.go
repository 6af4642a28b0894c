package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectDelimiter(t *testing.T) {
	comma := writeFile(t, "a.csv", "Track,Revenue,Date\n")
	assert.Equal(t, ',', DetectDelimiter(comma))

	semi := writeFile(t, "b.csv", "Track;Revenue;Date\n")
	assert.Equal(t, ';', DetectDelimiter(semi))

	// Tie goes to comma.
	tie := writeFile(t, "c.csv", "Track;Revenue,Date\n")
	assert.Equal(t, ',', DetectDelimiter(tie))

	assert.Equal(t, ',', DetectDelimiter(filepath.Join(t.TempDir(), "missing.csv")))
}

func TestLoadFrameComma(t *testing.T) {
	path := writeFile(t, "rev.csv", "Track,Revenue,Date\n\"Song A\",10.50,2024-01-15\n")
	frame, err := LoadFrame(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Track", "Revenue", "Date"}, frame.Columns)
	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "Song A", frame.Value(0, "Track"))
	assert.Equal(t, "10.50", frame.Value(0, "Revenue"))
}

func TestLoadFrameSemicolon(t *testing.T) {
	path := writeFile(t, "rev.csv", "Track;Revenue;Date\nSong A;5,25;2024-02-20\n")
	frame, err := LoadFrame(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Track", "Revenue", "Date"}, frame.Columns)
	require.Len(t, frame.Rows, 1)
	// Comma-decimal survives because it is not the delimiter.
	assert.Equal(t, "5,25", frame.Value(0, "Revenue"))
}

func TestLoadFrameCleansEmptyRowsAndColumns(t *testing.T) {
	path := writeFile(t, "rev.csv", "Track,Empty,Revenue\nSong A,,10\n,,\nSong B,,20\n")
	frame, err := LoadFrame(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Track", "Revenue"}, frame.Columns)
	assert.Len(t, frame.Rows, 2)
	assert.Equal(t, "20", frame.Value(1, "Revenue"))
}

func TestLoadFramePadsShortRows(t *testing.T) {
	path := writeFile(t, "rev.csv", "Track,Revenue,Date\nSong A,10\n")
	frame, err := LoadFrame(path)
	require.NoError(t, err)

	require.Len(t, frame.Rows, 1)
	assert.Equal(t, "", frame.Value(0, "Date"))
}

func TestLoadFrameMissingFile(t *testing.T) {
	_, err := LoadFrame(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	var fre *FileReadError
	assert.ErrorAs(t, err, &fre)
}

func TestUniqueValues(t *testing.T) {
	path := writeFile(t, "rev.csv", "Track,Revenue\nA,1\nB,2\nA,3\n")
	frame, err := LoadFrame(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, frame.UniqueValues("Track"))
	assert.Nil(t, frame.UniqueValues("Missing"))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x\n"), 0o644))

	files, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.csv", filepath.Base(files[0]))

	none, err := ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
