package binder

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// ScopeKind discriminates the kinds of scope the binder threads through the
// tree. Block-scoped (let/const), function-scoped (var), and type-space
// declarations all resolve through the same chain; ScopeKind only affects
// how a `var` hoists (to the nearest Function/SourceFile scope) and where
// `this`/parameter-related lookups stop.
type ScopeKind int

const (
	ScopeSourceFile ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeBlock
	ScopeClass
	ScopeParameter
	ScopeCatch
	ScopeForLoop
)

// Scope is one entry in the binder's scope stack. Symbols declared directly
// in a scope live in its own table; lookups walk outward through Parent.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	Node   ast.NodeIndex
	table  map[string]*Symbol
}

func newScope(kind ScopeKind, parent *Scope, node ast.NodeIndex) *Scope {
	return &Scope{Kind: kind, Parent: parent, Node: node, table: make(map[string]*Symbol)}
}

// functionScope walks outward to the nearest scope `var` hoists into.
func (s *Scope) functionScope() *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeFunction || sc.Kind == ScopeSourceFile || sc.Kind == ScopeModule {
			return sc
		}
	}
	return s
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.table[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.table[name]
	return sym, ok
}

// declare inserts or merges a declaration into target (the scope the
// declaration actually belongs in — the function scope for `var`, the
// scope itself otherwise). It records a duplicate-identifier diagnostic
// when the incoming declaration's meaning conflicts with an existing,
// non-mergeable symbol of the same name, but always keeps the symbol (the
// binder never deletes on conflict, per spec).
func (target *Scope) declare(diags *diagnostics.Collector, name string, flags SymbolFlags, decl ast.NodeIndex, declTok token.Token, exported bool) *Symbol {
	if existing, ok := target.table[name]; ok {
		if meaningOf(existing.Flags)&meaningOf(flags) == 0 || mergeable(existing.Flags, flags) {
			existing.Flags |= flags
			existing.Declarations = append(existing.Declarations, decl)
			if existing.ValueDeclaration == ast.NONE && meaningOf(flags)&meaningValue != 0 {
				existing.ValueDeclaration = decl
			}
			existing.Exported = existing.Exported || exported
			return existing
		}
		diags.Add(diagnostics.NewError(diagnostics.ErrDuplicateIdentifier, declTok, "Duplicate identifier '%s'.", name))
		existing.Declarations = append(existing.Declarations, decl)
		return existing
	}
	sym := &Symbol{Name: name, Flags: flags, Declarations: []ast.NodeIndex{decl}, Exported: exported}
	if meaningOf(flags)&meaningValue != 0 {
		sym.ValueDeclaration = decl
	}
	target.table[name] = sym
	return sym
}

// All returns every symbol declared directly in this scope (not ancestors).
func (s *Scope) All() map[string]*Symbol { return s.table }
