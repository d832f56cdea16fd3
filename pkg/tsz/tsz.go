// Package tsz is the stable embeddable facade over the compiler core —
// Parse, Bind, Check — that cmd/tsz and any other host program import
// instead of reaching into internal/, the role the teacher's pkg/embed
// plays for script execution rather than static checking.
package tsz

import (
	"fmt"
	"os"

	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/parser"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// Options re-exports checker.Options, so a host program need only import
// this one package.
type Options = checker.Options

// Interner re-exports typesystem.Interner: a host program shares one
// across every file it checks together.
type Interner = typesystem.Interner

// NewInterner constructs a fresh, empty type interner.
func NewInterner() *Interner { return typesystem.New() }

// File is one parsed-and-bound source file, ready to be checked alone or
// together with other Files in a Check call.
type File struct {
	Path   string
	Arena  *ast.Arena
	Root   ast.NodeIndex
	Binder *binder.State
}

// Parse scans and parses src, returning the resulting arena and root node
// along with any syntax diagnostics.
func Parse(path, src string) (*ast.Arena, ast.NodeIndex, []*diagnostics.DiagnosticError) {
	p := parser.New(path, src)
	root := p.ParseSourceFile()
	return p.Arena(), root, p.Errors()
}

// Bind runs the binder over an already-parsed file, returning the
// SymbolTable/FlowGraph-bearing State and any binding diagnostics.
func Bind(path string, a *ast.Arena, root ast.NodeIndex) (*binder.State, []*diagnostics.DiagnosticError) {
	diags := diagnostics.NewCollector(path)
	state := binder.Bind(a, root, diags)
	return state, diags.Diagnostics()
}

// ParseAndBind is Parse followed by Bind, the common case of preparing one
// File for Check.
func ParseAndBind(path, src string) (*File, []*diagnostics.DiagnosticError) {
	a, root, errs := Parse(path, src)
	state, bindErrs := Bind(path, a, root)
	return &File{Path: path, Arena: a, Root: root, Binder: state}, append(errs, bindErrs...)
}

// Check type-checks one or more Files that share in, returning every
// diagnostic the checker produces across all of them.
func Check(in *Interner, files []*File, opts Options) []*diagnostics.DiagnosticError {
	units := make([]checker.FileUnit, len(files))
	for i, f := range files {
		units[i] = checker.FileUnit{Index: i, Arena: f.Arena, Binder: f.Binder}
	}
	prog := &checker.Program{Files: units}
	return checker.Check(in, prog, opts, checker.CrossFileResolution{})
}

// CheckFile is Check for the single-file case.
func CheckFile(in *Interner, f *File, opts Options) []*diagnostics.DiagnosticError {
	return checker.CheckFile(in, f.Arena, f.Binder, opts)
}

// FormatDiagnostics writes the tsc wire format for each diagnostic to w,
// one per line.
func FormatDiagnostics(w *os.File, diags []*diagnostics.DiagnosticError) {
	for _, d := range diags {
		fmt.Fprintln(w, d.Error())
	}
}
