package checker_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/parser"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// check parses, binds, and type-checks src in one step, the harness every
// scenario below builds on.
func check(t *testing.T, src string, opts checker.Options) []*diagnostics.DiagnosticError {
	t.Helper()
	p := parser.New("scenario.ts", src)
	root := p.ParseSourceFile()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	diags := diagnostics.NewCollector("scenario.ts")
	state := binder.Bind(p.Arena(), root, diags)
	in := typesystem.New()
	return checker.CheckFile(in, p.Arena(), state, opts)
}

func codes(diags []*diagnostics.DiagnosticError) []diagnostics.ErrorCode {
	out := make([]diagnostics.ErrorCode, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func hasCode(diags []*diagnostics.DiagnosticError, code diagnostics.ErrorCode) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Scenario 1: `const x: number = "s"` reports TS2322.
func TestConstNumberAssignedString(t *testing.T) {
	diags := check(t, `const x: number = "s";`, checker.Options{})
	if !hasCode(diags, diagnostics.ErrTypeNotAssignable) {
		t.Fatalf("expected TS2322, got %v", codes(diags))
	}
}

// Scenario 2: a possibly-null member access reports TS18047 under
// strictNullChecks, and narrowing with an `if` guard clears it.
func TestPossiblyNullMemberAccess(t *testing.T) {
	src := `
function len(s: string | null): number {
	return s.length;
}
`
	diags := check(t, src, checker.Options{StrictNullChecks: true})
	if !hasCode(diags, diagnostics.ErrObjectPossiblyNullStrict) {
		t.Fatalf("expected TS18047, got %v", codes(diags))
	}

	narrowed := `
function len(s: string | null): number {
	if (s !== null) {
		return s.length;
	}
	return 0;
}
`
	diags = check(t, narrowed, checker.Options{StrictNullChecks: true})
	if hasCode(diags, diagnostics.ErrObjectPossiblyNullStrict) {
		t.Fatalf("narrowed access should not report TS18047, got %v", codes(diags))
	}
}

// Scenario 3: assigning a bare numeric literal to an enum-typed variable
// is rejected (enums are nominally typed), but assigning one of the
// enum's own members is accepted.
func TestEnumNominalAssignability(t *testing.T) {
	src := `
enum Color { Red, Green, Blue }
const a: Color = 5;
`
	diags := check(t, src, checker.Options{})
	if !hasCode(diags, diagnostics.ErrTypeNotAssignable) {
		t.Fatalf("expected TS2322 assigning a bare literal to an enum type, got %v", codes(diags))
	}

	ok := `
enum Color { Red, Green, Blue }
const a: Color = Color.Green;
`
	diags = check(t, ok, checker.Options{})
	if hasCode(diags, diagnostics.ErrTypeNotAssignable) {
		t.Fatalf("assigning an enum's own member should not report TS2322, got %v", codes(diags))
	}
}

// Scenario 4: declaration-merged interfaces combine their members without
// reporting a diagnostic for an object literal satisfying the merged shape.
func TestInterfaceMergeNoDiagnostic(t *testing.T) {
	src := `
interface Point { x: number }
interface Point { y: number }
const p: Point = { x: 1, y: 2 };
`
	diags := check(t, src, checker.Options{})
	if hasCode(diags, diagnostics.ErrTypeNotAssignable) {
		t.Fatalf("merged interface satisfied by a matching literal should not report TS2322, got %v", codes(diags))
	}
}

// Scenario 5: a call whose argument doesn't match any parameter type
// reports TS2345.
func TestCallArgumentNotAssignable(t *testing.T) {
	src := `
function takesNumber(n: number): void {}
takesNumber("oops");
`
	diags := check(t, src, checker.Options{})
	if !hasCode(diags, diagnostics.ErrArgumentNotAssignable) {
		t.Fatalf("expected TS2345, got %v", codes(diags))
	}
}

// Scenario 6: `as const` on a tuple literal preserves each element's
// literal type rather than widening to the containing primitive.
func TestAsConstTuple(t *testing.T) {
	src := `
const pair = [1, "a"] as const;
const x: readonly [1, "a"] = pair;
`
	diags := check(t, src, checker.Options{})
	if hasCode(diags, diagnostics.ErrTypeNotAssignable) {
		t.Fatalf("as const tuple should keep its literal element types, got %v", codes(diags))
	}
}

// Cannot-find-name still reports TS2304 for an undeclared identifier.
func TestCannotFindName(t *testing.T) {
	diags := check(t, `const a = doesNotExist;`, checker.Options{})
	if !hasCode(diags, diagnostics.ErrCannotFindName) {
		t.Fatalf("expected TS2304, got %v", codes(diags))
	}
}

// A missing property on an inferred object type reports TS2339.
func TestPropertyDoesNotExist(t *testing.T) {
	src := `
const obj = { a: 1 };
const b = obj.missing;
`
	diags := check(t, src, checker.Options{})
	if !hasCode(diags, diagnostics.ErrPropertyDoesNotExist) {
		t.Fatalf("expected TS2339, got %v", codes(diags))
	}
}
