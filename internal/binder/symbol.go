// Package binder builds, in one traversal over the parser's AST arena, the
// scope-nested symbol table and the per-container flow graph that the
// checker narrows types against. It does not resolve cross-file symbols —
// that stays the checker's job.
package binder

import "github.com/mohsen1/tsz-sub030/internal/ast"

// SymbolFlags records which declaration kind(s) contributed to a Symbol.
// A single Symbol can carry more than one flag when TypeScript's merge
// rules allow it (interface+interface, namespace+function, namespace+class,
// overload signatures).
type SymbolFlags uint32

const (
	SymVariable SymbolFlags = 1 << iota
	SymFunction
	SymClass
	SymInterface
	SymEnum
	SymEnumMember
	SymNamespace
	SymTypeAlias
	SymAlias // import binding
	SymParameter
	SymProperty
)

func (f SymbolFlags) Has(o SymbolFlags) bool { return f&o != 0 }

// meaning buckets a symbol's flags fall into. TypeScript only conflicts
// declarations that share a meaning: `interface Foo {}` and `type Foo = {}`
// both occupy the type meaning and clash, but `class Foo {}` and
// `namespace Foo {}` occupy different meanings (value+type, and namespace)
// and so coexist in the same Symbol.
type meaning uint8

const (
	meaningValue meaning = 1 << iota
	meaningType
	meaningNamespace
)

func meaningOf(f SymbolFlags) meaning {
	var m meaning
	if f.Has(SymVariable | SymFunction | SymEnumMember | SymParameter | SymProperty | SymAlias | SymClass | SymEnum) {
		m |= meaningValue
	}
	if f.Has(SymClass | SymEnum | SymInterface | SymTypeAlias) {
		m |= meaningType
	}
	if f.Has(SymNamespace) {
		m |= meaningNamespace
	}
	return m
}

// Symbol is one named declaration site, possibly the result of merging
// several compatible declarations together.
type Symbol struct {
	Name             string
	Flags            SymbolFlags
	Declarations     []ast.NodeIndex
	ValueDeclaration ast.NodeIndex // first declaration with runtime meaning, NONE if purely a type
	Exported         bool
	Default          bool
}

// mergeable reports whether a symbol already carrying `existing` flags may
// additionally carry `incoming` flags on the same Symbol, per spec: two
// interfaces, a namespace with a function or class, or repeated function
// declarations (overload signatures).
func mergeable(existing, incoming SymbolFlags) bool {
	if existing == incoming && existing.Has(SymInterface|SymFunction) {
		return true
	}
	if existing.Has(SymNamespace) && incoming.Has(SymFunction|SymClass|SymNamespace) {
		return true
	}
	if incoming.Has(SymNamespace) && existing.Has(SymFunction|SymClass|SymNamespace) {
		return true
	}
	return false
}
