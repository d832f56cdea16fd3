// Package checker implements the fourth core subsystem: an AST walker that
// drives the solver over the binder's scope tree and flow graph to infer
// expression types, narrow them at control-flow points, and report
// diagnostics. It is the layer that finally turns the diagnostic codes
// diagnostics.go defines (2304, 2322, 2345, 2339, ...) into actual
// reported errors — the scanner, parser, and binder only report syntax and
// naming problems; every type-relationship diagnostic is produced here.
package checker

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/solver"
	"github.com/mohsen1/tsz-sub030/internal/token"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// Options mirrors the tsconfig-shaped compiler-options surface spec.md §6
// names: the strictness flags that change assignability/narrowing
// behavior, plus the target/module/lib metadata a full driver would
// thread down to the checker for lib-file resolution.
type Options struct {
	Strict                       bool
	StrictNullChecks              bool
	StrictFunctionTypes           bool
	StrictPropertyInitialization  bool
	ExactOptionalPropertyTypes    bool
	NoUncheckedIndexedAccess      bool
	NoImplicitAny                 bool
	Target                        string
	Module                        string
	CheckJS                       bool
	Lib                           []string
}

// Normalize applies the TypeScript "strict implies the rest" rule: when
// Strict is set it turns on StrictNullChecks, StrictFunctionTypes and
// StrictPropertyInitialization, and leaves every other flag as it is. A
// sub-flag set explicitly to false alongside Strict isn't representable at
// this struct's granularity, so Strict wins for those three — the per-field
// flags are what actually govern behavior once Normalize has run.
func (o Options) Normalize() Options {
	if o.Strict {
		o.StrictNullChecks = true
		o.StrictFunctionTypes = true
		o.StrictPropertyInitialization = true
	}
	return o
}

// CrossFileResolution maps an import specifier used from one source file to
// the file index of the module it resolves to, following re-exports
// transitively. Resolve returns ok=false for a specifier this checker run
// has no knowledge of (an external package, or one outside the compiled
// set), in which case the checker treats the imported bindings as `any`
// rather than reporting 2307 itself — module-resolution diagnostics belong
// to the driver that built this map.
type CrossFileResolution struct {
	Resolve func(fromFile int, specifier string) (toFile int, ok bool)
}

// Program is the multi-file input Check walks: one Arena/State pair per
// source file, indexed the same way CrossFileResolution indexes them.
type Program struct {
	Files []FileUnit
}

// FileUnit is one parsed-and-bound source file plus its index within the
// enclosing Program (what CrossFileResolution's toFile/fromFile refer to).
type FileUnit struct {
	Index  int
	Arena  *ast.Arena
	Binder *binder.State
}

// Checker walks one Program's files against a shared Interner, producing a
// single Collector of diagnostics and a per-node inferred-type cache any
// caller (tests, a language-service facade) can query with TypeOfNode.
//
// The subtype/assignability memoization spec.md §5 requires is keyed on
// (source, target, mode flags) rather than just (source, target): a result
// cached while checking a strictNullChecks file must never be reused while
// checking one with the flag off, since null/undefined's subtype
// relationships differ between the two modes. The cache lives here, not in
// solver.Checker, because solver.Checker has no notion of Options — it
// only sees TypeIds.
type Checker struct {
	in    *typesystem.Interner
	sv    *solver.Checker
	diags *diagnostics.Collector
	opts  Options

	prog  *Program
	file  *FileUnit
	cross CrossFileResolution

	scope *binder.Scope
	env   *narrowEnv

	typeOfNode map[ast.NodeIndex]typesystem.TypeId
	typeOfDecl map[ast.NodeIndex]typesystem.TypeId // declared (not inferred/narrowed) type, keyed by declaration node
	nominals   map[ast.NodeIndex]typesystem.NominalID
	resolving  map[ast.NodeIndex]bool // declarations whose shape is mid-resolution, guards recursive types

	assignCache map[assignCacheKey]bool

	currentReturnType typesystem.TypeId
	inFunctionBody    bool
}

// assignCacheKey is the per-checker memoization key spec.md §5 mandates:
// the mode flags that change what "assignable" means are part of the key,
// so a cache entry computed under one set of strictness flags can never
// answer a query made under another.
type assignCacheKey struct {
	source, target typesystem.TypeId
	freshObjectLit bool
	strictNullChecks,
	strictFunctionTypes,
	exactOptionalPropertyTypes,
	noUncheckedIndexedAccess bool
}

// New creates a Checker over one Program, sharing in across every file
// (the interner is the one piece of shared mutable state spec.md's
// concurrency model allows — see internal/typesystem's doc comment).
func New(in *typesystem.Interner, prog *Program, opts Options, cross CrossFileResolution, diagsFile string) *Checker {
	diags := diagnostics.NewCollector(diagsFile)
	c := &Checker{
		in:          in,
		sv:          solver.NewChecker(in, diags),
		diags:       diags,
		opts:        opts.Normalize(),
		prog:        prog,
		typeOfNode:  make(map[ast.NodeIndex]typesystem.TypeId),
		typeOfDecl:  make(map[ast.NodeIndex]typesystem.TypeId),
		nominals:    make(map[ast.NodeIndex]typesystem.NominalID),
		assignCache: make(map[assignCacheKey]bool),
		cross:       cross,
	}
	return c
}

// Check is the external check(arena, binder_state, interner, options,
// cross_file_resolution) -> diagnostics entry point spec.md §6 names. It
// runs one Checker over every file in prog and returns the merged,
// deduplicated diagnostic list.
func Check(in *typesystem.Interner, prog *Program, opts Options, cross CrossFileResolution) []*diagnostics.DiagnosticError {
	if len(prog.Files) == 0 {
		return nil
	}
	c := New(in, prog, opts, cross, prog.Files[0].Arena.FileName)
	for i := range prog.Files {
		c.checkFile(&prog.Files[i])
	}
	c.sv.PollEvaluatorOverflow()
	return c.diags.Diagnostics()
}

// CheckFile runs the checker over exactly one file with no cross-file
// resolution — the common case for the six self-contained spec scenarios
// and most unit tests, which never need a second file in the Program.
func CheckFile(in *typesystem.Interner, a *ast.Arena, b *binder.State, opts Options) []*diagnostics.DiagnosticError {
	prog := &Program{Files: []FileUnit{{Index: 0, Arena: a, Binder: b}}}
	return Check(in, prog, opts, CrossFileResolution{})
}

func (c *Checker) checkFile(f *FileUnit) {
	c.file = f
	c.scope = f.Binder.Global
	c.env = newNarrowEnv(nil)
	c.checkSourceFile()
}

// checkSourceFile walks every top-level statement of the file under check.
func (c *Checker) checkSourceFile() {
	a := c.file.Arena
	root := rootSourceFile(a)
	stmts := a.SourceFile(root).Statements
	c.checkStatements(stmts)
}

// rootSourceFile finds the single KindSourceFile node in the arena — by
// construction (parser.ParseSourceFile) it is the last node allocated,
// after all of its statements, but walking to find it keeps the checker from
// assuming an internal/ast numbering detail that isn't part of its public
// contract.
func rootSourceFile(a *ast.Arena) ast.NodeIndex {
	for i := 1; i <= a.Len(); i++ {
		if a.Kind(ast.NodeIndex(i)) == ast.KindSourceFile {
			return ast.NodeIndex(i)
		}
	}
	return ast.NONE
}

// TypeOfNode is the external get_type_of_node(idx) -> TypeId query spec.md
// §6 names. It returns typesystem.NoType for a node the checker never
// visited (a type-only position with no runtime value, or a node outside
// the last-checked file).
func (c *Checker) TypeOfNode(n ast.NodeIndex) typesystem.TypeId {
	return c.typeOfNode[n]
}

// FormatType is the external format_type(TypeId) -> string query spec.md
// §6 names, delegated straight to the Interner's own formatter (objects as
// `{ a: number; b?: string }`, unions as `A | B`, functions as
// `(x: T) => R`).
func (c *Checker) FormatType(id typesystem.TypeId) string {
	return c.in.FormatType(id)
}

// Diagnostics returns every diagnostic recorded so far.
func (c *Checker) Diagnostics() []*diagnostics.DiagnosticError {
	return c.diags.Diagnostics()
}

func (c *Checker) setType(n ast.NodeIndex, t typesystem.TypeId) typesystem.TypeId {
	c.typeOfNode[n] = t
	return t
}

// tokenOf reconstructs a diagnostic anchor token from a node's span,
// computing line/column by scanning the source up to Start — the arena
// only keeps byte spans, matching the same tradeoff binder.nodeToken makes.
func (c *Checker) tokenOf(n ast.NodeIndex) token.Token {
	a := c.file.Arena
	sp := a.SpanOf(n)
	line, col := 1, 1
	src := a.Source
	limit := int(sp.Start)
	if limit > len(src) {
		limit = len(src)
	}
	for i := 0; i < limit; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return token.Token{Start: int(sp.Start), End: int(sp.End), Line: line, Column: col}
}

func (c *Checker) addError(n ast.NodeIndex, code diagnostics.ErrorCode, format string, args ...any) {
	c.diags.Add(diagnostics.NewError(code, c.tokenOf(n), format, args...))
}

// isAssignable wraps solver.Checker.IsAssignable with the per-checker,
// mode-flag-keyed memoization cache spec.md §5 requires: the key includes
// every strictness flag that can change the answer, so results computed
// for this Options set never leak into a Checker built with different
// flags (each Checker has its own assignCache, never a package-level one).
func (c *Checker) isAssignable(source, target typesystem.TypeId, freshObjectLit bool) bool {
	key := assignCacheKey{
		source:                     source,
		target:                     target,
		freshObjectLit:             freshObjectLit,
		strictNullChecks:           c.opts.StrictNullChecks,
		strictFunctionTypes:        c.opts.StrictFunctionTypes,
		exactOptionalPropertyTypes: c.opts.ExactOptionalPropertyTypes,
		noUncheckedIndexedAccess:   c.opts.NoUncheckedIndexedAccess,
	}
	if v, ok := c.assignCache[key]; ok {
		return v
	}
	result := c.sv.IsAssignable(source, target, solver.AssignabilityOptions{SourceIsFreshObjectLiteral: freshObjectLit})
	c.assignCache[key] = result
	return result
}

func (c *Checker) isSubtype(source, target typesystem.TypeId) bool {
	return c.sv.IsSubtype(source, target)
}
