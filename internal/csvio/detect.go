package csvio

import (
	"bufio"
	"os"
	"strings"
)

// DetectDelimiter inspects the first line of a file and returns ';' when it
// contains strictly more semicolons than commas, ',' otherwise. Any read
// failure also yields ',' so that the loader can surface the real error.
func DetectDelimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return ','
	}
	line := scanner.Text()
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// otherDelimiter returns the alternative delimiter used for the
// single-column retry.
func otherDelimiter(d rune) rune {
	if d == ',' {
		return ';'
	}
	return ','
}
