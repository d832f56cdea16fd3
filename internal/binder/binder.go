package binder

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// State is everything Bind produces for one source file: the nested scope
// tree (rooted at Global), one FlowGraph per function-like container
// (keyed by the node that owns the body — the source file itself for
// top-level code), and the file's direct export map.
type State struct {
	Arena   *ast.Arena
	Global  *Scope
	Flows   map[ast.NodeIndex]*FlowGraph
	Scopes  map[ast.NodeIndex]*Scope
	Exports *ExportTable
}

type binder struct {
	arena *ast.Arena
	diags *diagnostics.Collector
	state *State

	scope     *Scope
	flow      *FlowGraph
	current   *FlowNode
	container ast.NodeIndex // node the active FlowGraph is keyed by

	frames []*flowFrame
}

// flowFrame tracks the break/continue targets of one enclosing loop or
// switch, optionally reached via a label.
type flowFrame struct {
	label          string
	continueTarget *FlowNode // nil for switch (switch has no continue target of its own)
	breakJoins     []*FlowNode
}

// Bind runs the two interleaved passes — scope/symbol construction and flow
// graph construction — over one parsed source file.
func Bind(a *ast.Arena, file ast.NodeIndex, diags *diagnostics.Collector) *State {
	b := &binder{
		arena: a,
		diags: diags,
		state: &State{
			Arena:  a,
			Flows:  make(map[ast.NodeIndex]*FlowGraph),
			Scopes: make(map[ast.NodeIndex]*Scope),
		},
	}
	b.scope = newScope(ScopeSourceFile, nil, file)
	b.state.Global = b.scope
	b.state.Scopes[file] = b.scope
	b.flow = NewFlowGraph()
	b.container = file
	b.current = b.flow.Start
	b.state.Flows[file] = b.flow

	sf := a.SourceFile(file)
	b.bindStatements(sf.Statements)
	b.state.Exports = b.buildExports(sf.Statements)
	return b.state
}

func (b *binder) buildExports(stmts []ast.NodeIndex) *ExportTable {
	exports := newExportTable()
	for _, stmt := range stmts {
		name, mods, ok := b.declarationNameAndModifiers(stmt)
		if !ok || !mods.Has(ast.ModExport) {
			continue
		}
		if sym, ok := b.scope.LookupLocal(name); ok {
			exports.Direct[name] = sym
		}
	}
	return exports
}

// declarationNameAndModifiers extracts the declared name and modifier set
// of a top-level declaration statement, for export-map construction.
func (b *binder) declarationNameAndModifiers(n ast.NodeIndex) (string, ast.Modifiers, bool) {
	a := b.arena
	switch a.Kind(n) {
	case ast.KindFunctionDeclaration, ast.KindClassDeclaration:
		if a.Kind(n) == ast.KindClassDeclaration {
			c := a.Class(n)
			return b.identText(c.Name), c.Modifiers, c.Name != ast.NONE
		}
		f := a.Function(n)
		return b.identText(f.Name), f.Modifiers, f.Name != ast.NONE
	case ast.KindInterfaceDeclaration:
		i := a.Interface(n)
		return b.identText(i.Name), i.Modifiers, true
	case ast.KindTypeAliasDeclaration:
		t := a.TypeAlias(n)
		return b.identText(t.Name), t.Modifiers, true
	case ast.KindEnumDeclaration:
		e := a.Enum(n)
		return b.identText(e.Name), e.Modifiers, true
	case ast.KindVariableDeclarationList:
		list := a.VarDeclList(n)
		if !list.Modifiers.Has(ast.ModExport) || len(list.Declarations) == 0 {
			return "", list.Modifiers, false
		}
		return b.identText(a.VarDecl(list.Declarations[0]).Name), list.Modifiers, true
	}
	return "", 0, false
}

func (b *binder) identText(n ast.NodeIndex) string {
	if n == ast.NONE {
		return ""
	}
	return b.arena.Identifier(n).Text
}

// nodeToken reconstructs a diagnostic anchor token from a node's span,
// computing line/column by scanning the source text up to Start — the
// arena itself only keeps spans, not line/column (those are a scanner-time
// convenience the binder doesn't otherwise need).
func (b *binder) nodeToken(n ast.NodeIndex) token.Token {
	sp := b.arena.SpanOf(n)
	line, col := 1, 1
	src := b.arena.Source
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
