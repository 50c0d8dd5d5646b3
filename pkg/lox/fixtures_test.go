package lox

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every golden program under testdata/fixtures against
// a fresh Session and snapshots its combined stdout/stderr/exit-code
// shape, grounded on the teacher's own go-snaps-based fixture tests over
// interpreter output.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "fixtures", "*.lox"))
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		t.Fatal("expected at least one fixture under testdata/fixtures")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			stdout, stderr, code := RunToString(string(src))
			snaps.MatchSnapshot(t, struct {
				ExitCode int
				Stdout   string
				Stderr   string
			}{int(code), stdout, stderr})
		})
	}
}
