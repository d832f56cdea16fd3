package parser_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/parser"
)

func parseAndCollect(t *testing.T, src string) []*diagnostics.DiagnosticError {
	t.Helper()
	p := parser.New("input.ts", src)
	p.ParseSourceFile()
	return p.Errors()
}

func expectSingleCode(t *testing.T, src string, code diagnostics.ErrorCode) {
	t.Helper()
	errs := parseAndCollect(t, src)
	if len(errs) == 0 {
		t.Fatalf("input %q: expected a diagnostic, got none", src)
	}
	found := false
	for _, e := range errs {
		if e.Code == code {
			found = true
		}
	}
	if !found {
		t.Fatalf("input %q: expected code TS%d among %v", src, code, errs)
	}
}

func TestMissingClosingParenReportsExpectedToken(t *testing.T) {
	expectSingleCode(t, "if (x { y(); }", diagnostics.ErrExpectedToken)
}

func TestMissingSemicolonReportsExpectedToken(t *testing.T) {
	// No line break before the next statement, so ASI does not apply and a
	// ';' is required.
	expectSingleCode(t, "let x = 1 let y = x", diagnostics.ErrExpectedToken)
}

func TestDanglingOperatorReportsExpressionExpected(t *testing.T) {
	expectSingleCode(t, "let x = ;", diagnostics.ErrExpressionExpected)
}

func TestUnclosedGenericReportsExpectedGreaterThan(t *testing.T) {
	expectSingleCode(t, "let x: Array<number;", diagnostics.ErrExpectedToken)
}

func TestThrowWithLineBreakReportsStatementExpected(t *testing.T) {
	expectSingleCode(t, "throw\nnew Error('boom');", diagnostics.ErrStatementExpected)
}

func TestDiagnosticsDeduplicateByFileSpanAndCode(t *testing.T) {
	errs := parseAndCollect(t, "let x = ;\nlet y = ;")
	seen := make(map[string]int)
	for _, e := range errs {
		key := e.Error()
		seen[key]++
		if seen[key] > 1 {
			t.Fatalf("duplicate diagnostic %q reported twice", key)
		}
	}
}

func TestRecoveryContinuesAfterMalformedStatement(t *testing.T) {
	// A stray ')' is a malformed statement on its own; the parser reports it
	// and keeps going rather than aborting, so the well-formed statement
	// after it still reaches the tree.
	p := parser.New("input.ts", ")\nlet x = 1;")
	file := p.ParseSourceFile()
	stmts := p.Arena().SourceFile(file).Statements
	if len(stmts) < 2 {
		t.Fatalf("expected the malformed statement plus the recovered variable statement, got %d", len(stmts))
	}
	last := stmts[len(stmts)-1]
	if p.Arena().Kind(last) != ast.KindVariableDeclarationList {
		t.Fatalf("expected the final statement to be the recovered variable declaration, got %s", p.Arena().Kind(last))
	}
}
