package checker_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
)

// conformanceCase is one expected "line,col,code" diagnostic, decoded from
// a fixture's diagnostics.txt section.
type conformanceCase struct {
	line, col int
	code      diagnostics.ErrorCode
}

// TestConformanceFixtures runs every internal/checker/testdata/*.txtar
// archive: a source.ts section plus a diagnostics.txt section listing the
// diagnostics the checker must produce, one "line,col,code" triple per
// line — the conformance-corpus framing spec §8's scenario table uses.
func TestConformanceFixtures(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected at least one conformance fixture")
	}
	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			runConformanceFixture(t, path)
		})
	}
}

func runConformanceFixture(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	archive := txtar.Parse(data)

	var source string
	var wantLines []string
	for _, f := range archive.Files {
		switch f.Name {
		case "source.ts":
			source = string(f.Data)
		case "diagnostics.txt":
			for _, line := range strings.Split(strings.TrimSpace(string(f.Data)), "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					wantLines = append(wantLines, line)
				}
			}
		}
	}
	if source == "" {
		t.Fatalf("fixture %s has no source.ts section", path)
	}

	want := make([]conformanceCase, 0, len(wantLines))
	for _, line := range wantLines {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			t.Fatalf("malformed diagnostics.txt line %q", line)
		}
		l, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			t.Fatalf("bad line number in %q: %v", line, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			t.Fatalf("bad column in %q: %v", line, err)
		}
		code, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			t.Fatalf("bad code in %q: %v", line, err)
		}
		want = append(want, conformanceCase{line: l, col: c, code: diagnostics.ErrorCode(code)})
	}

	got := check(t, source, checker.Options{StrictNullChecks: true})
	gotSet := make(map[string]bool, len(got))
	for _, d := range got {
		gotSet[fmt.Sprintf("%d,%d,%d", d.Token.Line, d.Token.Column, int(d.Code))] = true
	}

	for _, w := range want {
		key := fmt.Sprintf("%d,%d,%d", w.line, w.col, int(w.code))
		if !gotSet[key] {
			t.Errorf("%s: expected diagnostic TS%d at %d:%d, got %v", path, w.code, w.line, w.col, got)
		}
	}
}
