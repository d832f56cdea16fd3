// Package ast implements the flat, index-addressed syntax tree produced by
// the parser. Nodes are not pointers into a heap of per-kind structs; they
// are 32-bit indices into an Arena, and per-kind data lives in typed side
// tables keyed by that index. This keeps traversal cache-friendly and lets
// the binder and checker attach their own per-node side tables (symbol
// links, flow nodes, inferred types) without touching the syntax node
// itself.
package ast

import "github.com/mohsen1/tsz-sub030/internal/token"

// NodeIndex addresses one node in an Arena. The zero value, NONE, never
// addresses a real node — node 0 is reserved as the sentinel so a
// zero-initialized NodeIndex field reads as "absent" rather than "root".
type NodeIndex uint32

// NONE is the sentinel "no node" index.
const NONE NodeIndex = 0

// Span is a half-open [Start, End) byte range into the source text.
type Span struct {
	Start uint32
	End   uint32
}

// Len reports the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Start }

// Arena owns every node of one parsed source file. Index 0 is the unused
// NONE sentinel; real nodes occupy indices 1..len(kinds)-1. Nodes are
// appended in child-before-parent order: by the time a parent node is
// created, every child index it references already exists in the arena.
type Arena struct {
	FileName string
	Source   string

	kinds   []Kind
	spans   []Span
	parents []NodeIndex

	// Side tables. Only entries for nodes of the matching Kind are
	// populated; looking one up for the wrong kind returns the zero value.
	identifiers   map[NodeIndex]IdentifierData
	literals      map[NodeIndex]LiteralData
	templates     map[NodeIndex]TemplateLiteralData
	binaries      map[NodeIndex]BinaryData
	logicals      map[NodeIndex]LogicalData
	unaries       map[NodeIndex]UnaryData
	calls         map[NodeIndex]CallData
	members       map[NodeIndex]MemberData
	conditionals  map[NodeIndex]ConditionalExprData
	functions     map[NodeIndex]FunctionData
	parameters    map[NodeIndex]ParameterData
	varDecls      map[NodeIndex]VarDeclData
	varDeclLists  map[NodeIndex]VarDeclListData
	blocks        map[NodeIndex]BlockData
	ifs           map[NodeIndex]IfData
	loops         map[NodeIndex]LoopData
	returns       map[NodeIndex]ReturnData
	typeAliases   map[NodeIndex]TypeAliasData
	interfaces    map[NodeIndex]InterfaceData
	classes       map[NodeIndex]ClassData
	properties    map[NodeIndex]PropertyData
	typeRefs      map[NodeIndex]TypeRefData
	unionTypes    map[NodeIndex]UnionIntersectionData
	arrayTypes    map[NodeIndex]ArrayTypeData
	tupleTypes    map[NodeIndex]TupleTypeData
	funcTypes     map[NodeIndex]FunctionTypeData
	condTypes     map[NodeIndex]ConditionalTypeData
	mappedTypes   map[NodeIndex]MappedTypeData
	indexedTypes  map[NodeIndex]IndexedAccessTypeData
	keyofTypes    map[NodeIndex]KeyOfTypeData
	typeParams    map[NodeIndex]TypeParameterData
	objectLits    map[NodeIndex]ObjectLiteralData
	propAssigns   map[NodeIndex]PropertyAssignData
	arrayLits     map[NodeIndex]ArrayLiteralData
	exprStmts     map[NodeIndex]ExprStmtData
	sourceFiles   map[NodeIndex]SourceFileData
	arrows        map[NodeIndex]ArrowFunctionData
	asExprs       map[NodeIndex]AsExpressionData
	tries          map[NodeIndex]TryData
	catchClauses   map[NodeIndex]CatchClauseData
	switches       map[NodeIndex]SwitchData
	caseClauses    map[NodeIndex]CaseClauseData
	labeled        map[NodeIndex]LabeledStatementData
	breakContinues map[NodeIndex]BreakContinueData
	enums          map[NodeIndex]EnumData
	enumMembers    map[NodeIndex]EnumMemberData
}

// New creates an empty Arena for one source file. Index 0 is reserved for
// NONE.
func New(fileName, source string) *Arena {
	a := &Arena{
		FileName: fileName,
		Source:   source,
		kinds:    make([]Kind, 1, 256),
		spans:    make([]Span, 1, 256),
		parents:  make([]NodeIndex, 1, 256),
	}
	return a
}

// Len returns the number of real nodes in the arena (excluding NONE).
func (a *Arena) Len() int { return len(a.kinds) - 1 }

// Kind returns the syntax kind of n.
func (a *Arena) Kind(n NodeIndex) Kind {
	if int(n) >= len(a.kinds) {
		return KindInvalid
	}
	return a.kinds[n]
}

// SpanOf returns the byte span of n.
func (a *Arena) SpanOf(n NodeIndex) Span {
	if int(n) >= len(a.spans) {
		return Span{}
	}
	return a.spans[n]
}

// ParentOf returns the parent index of n, or NONE for the source file root.
func (a *Arena) ParentOf(n NodeIndex) NodeIndex {
	if int(n) >= len(a.parents) {
		return NONE
	}
	return a.parents[n]
}

// Text returns the source substring spanned by n.
func (a *Arena) Text(n NodeIndex) string {
	sp := a.SpanOf(n)
	if int(sp.End) > len(a.Source) {
		return ""
	}
	return a.Source[sp.Start:sp.End]
}

// alloc appends a new node of the given kind and span, under parent, and
// returns its index. Every construction helper in build.go funnels through
// this so the child-before-parent invariant holds by construction: a
// caller must have already allocated (and thus obtained the NodeIndex of)
// every child before it can call alloc for the parent.
func (a *Arena) alloc(kind Kind, span Span, parent NodeIndex) NodeIndex {
	idx := NodeIndex(len(a.kinds))
	a.kinds = append(a.kinds, kind)
	a.spans = append(a.spans, span)
	a.parents = append(a.parents, parent)
	return idx
}

// SetParent fixes up the parent pointer of n after it was allocated with an
// unknown parent — used when a node is built bottom-up before its eventual
// container exists yet (e.g. a parameter list built before the function
// node itself).
func (a *Arena) SetParent(n, parent NodeIndex) {
	if int(n) < len(a.parents) {
		a.parents[n] = parent
	}
}

func spanFromTokens(start, end token.Token) Span {
	return Span{Start: uint32(start.Start), End: uint32(end.End)}
}
