package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/config"
)

func TestParseConfigDefaults(t *testing.T) {
	c, err := config.ParseConfig([]byte(`strict: true`), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Target != "ESNext" {
		t.Fatalf("expected default target ESNext, got %q", c.Target)
	}
	if !c.Strict {
		t.Fatalf("expected strict to round-trip true")
	}
	opts := c.CheckerOptions()
	if !opts.StrictNullChecks || !opts.StrictFunctionTypes || !opts.StrictPropertyInitialization {
		t.Fatalf("expected strict to imply its sub-flags, got %+v", opts)
	}
}

func TestParseConfigRejectsUnknownTarget(t *testing.T) {
	_, err := config.ParseConfig([]byte(`target: ES3`), "test.yaml")
	if err == nil {
		t.Fatalf("expected an error for an unknown target")
	}
}

func TestParseConfigIgnoresUnknownKeys(t *testing.T) {
	_, err := config.ParseConfig([]byte("strict: true\nnotARealOption: 42\n"), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error for an unknown key: %v", err)
	}
}

func TestFindConfigWalksUpParents(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "tsz.yaml"), []byte("strict: true\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("making nested dir: %v", err)
	}
	found, err := config.FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "tsz.yaml")
	if found != want {
		t.Fatalf("expected %s, got %s", want, found)
	}
}
