package batch_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/batch"
	"github.com/mohsen1/tsz-sub030/internal/checker"
)

func TestRunCompilesEachDirectoryAndEmitsSentinel(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte(`const x: number = "s";`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(dir + "\n")
	if err := batch.Run(stdin, &stdout, &stderr, checker.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "TS2322") {
		t.Fatalf("expected TS2322 in batch output, got: %s", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), batch.DoneSentinel) {
		t.Fatalf("expected output to end with the done sentinel, got: %s", out)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected a request-id line on stderr")
	}
}

func TestRunHandlesMultipleDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	os.WriteFile(filepath.Join(dirA, "clean.ts"), []byte(`const x: number = 1;`), 0o644)
	os.WriteFile(filepath.Join(dirB, "bad.ts"), []byte(`const y: number = "s";`), 0o644)

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(dirA + "\n" + dirB + "\n")
	if err := batch.Run(stdin, &stdout, &stderr, checker.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "TS2322") {
		t.Fatalf("expected TS2322 from the second directory, got: %s", stdout.String())
	}
}
