package diagcache_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/diagcache"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
)

func TestLookupKnownCode(t *testing.T) {
	cat, err := diagcache.Open()
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer cat.Close()

	e, ok, err := cat.Lookup(diagnostics.ErrTypeNotAssignable)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if !ok {
		t.Fatalf("expected TS2322 to be in the catalog")
	}
	if e.Category != "error" {
		t.Fatalf("expected category 'error', got %q", e.Category)
	}
}

func TestLookupUnknownCode(t *testing.T) {
	cat, err := diagcache.Open()
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer cat.Close()

	_, ok, err := cat.Lookup(diagnostics.ErrorCode(99999))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected code 99999 to be unknown")
	}
}
