package tsz_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/pkg/tsz"
)

func TestParseAndBindAndCheckFile(t *testing.T) {
	f, errs := tsz.ParseAndBind("main.ts", `const x: number = "s";`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse/bind errors: %v", errs)
	}
	in := tsz.NewInterner()
	diags := tsz.CheckFile(in, f, tsz.Options{})
	if len(diags) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestCheckAcrossMultipleFiles(t *testing.T) {
	in := tsz.NewInterner()
	fa, _ := tsz.ParseAndBind("a.ts", `const ok: number = 1;`)
	fb, _ := tsz.ParseAndBind("b.ts", `const bad: string = 1;`)
	diags := tsz.Check(in, []*tsz.File{fa, fb}, tsz.Options{})
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic from b.ts")
	}
}
