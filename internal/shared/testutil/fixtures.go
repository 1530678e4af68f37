package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFixture writes a dataset file under root at the slash-separated rel
// path, one line per element, and returns its absolute path.
func WriteFixture(t *testing.T, root, rel string, lines ...string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", rel, err)
	}
	return path
}

// Preamble returns n placeholder lines standing in for the title and notes
// a statistics publisher puts above the header row.
func Preamble(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = `"Preamble line"`
	}
	return lines
}

// Lines concatenates line groups, e.g. Lines(Preamble(10), header, rows)
func Lines(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
