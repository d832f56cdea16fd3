// Package typesystem implements the structural type system's content-
// addressed interner: every type the checker reasons about is a TypeId, a
// 32-bit handle into an append-only table, so structurally identical types
// compare equal by handle instead of by deep traversal.
package typesystem

// TypeId is a 32-bit handle into the Interner. The zero value, NoType,
// never addresses a real entry.
type TypeId uint32

// NoType is the sentinel "absent type" handle.
const NoType TypeId = 0

// Kind discriminates the tagged variant an Interner entry holds.
type Kind uint8

const (
	KindIntrinsic Kind = iota
	KindLiteralString
	KindLiteralNumber
	KindLiteralBigInt
	KindLiteralBoolean
	KindUniqueSymbol
	KindUnion
	KindIntersection
	KindObject
	KindCallable
	KindFunction
	KindArray
	KindTuple
	KindTypeParameter
	KindBoundParameter
	KindReference
	KindLazy
	KindApplication
	KindConditional
	KindMapped
	KindKeyOf
	KindIndexAccess
	KindTemplateLiteral
	KindReadonly
	KindTypeQuery
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindIntrinsic:
		return "Intrinsic"
	case KindLiteralString:
		return "LiteralString"
	case KindLiteralNumber:
		return "LiteralNumber"
	case KindLiteralBigInt:
		return "LiteralBigInt"
	case KindLiteralBoolean:
		return "LiteralBoolean"
	case KindUniqueSymbol:
		return "UniqueSymbol"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindObject:
		return "Object"
	case KindCallable:
		return "Callable"
	case KindFunction:
		return "Function"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindTypeParameter:
		return "TypeParameter"
	case KindBoundParameter:
		return "BoundParameter"
	case KindReference:
		return "Reference"
	case KindLazy:
		return "Lazy"
	case KindApplication:
		return "Application"
	case KindConditional:
		return "Conditional"
	case KindMapped:
		return "Mapped"
	case KindKeyOf:
		return "KeyOf"
	case KindIndexAccess:
		return "IndexAccess"
	case KindTemplateLiteral:
		return "TemplateLiteral"
	case KindReadonly:
		return "Readonly"
	case KindTypeQuery:
		return "TypeQuery"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// IntrinsicKind names the reserved, well-known intrinsic types. Their
// TypeIds are stable across every Interner instance (see the reserved
// block in interner.go) so checker code can compare against them directly
// instead of looking them up by name.
type IntrinsicKind uint8

const (
	IntrinsicAny IntrinsicKind = iota
	IntrinsicUnknown
	IntrinsicNever
	IntrinsicVoid
	IntrinsicUndefined
	IntrinsicNull
	IntrinsicString
	IntrinsicNumber
	IntrinsicBoolean
	IntrinsicBigInt
	IntrinsicSymbol
	IntrinsicObject
	IntrinsicError
)

func (k IntrinsicKind) String() string {
	names := [...]string{"any", "unknown", "never", "void", "undefined", "null",
		"string", "number", "boolean", "bigint", "symbol", "object", "error"}
	if int(k) < len(names) {
		return names[k]
	}
	return "intrinsic?"
}

// NominalID tags a class/enum/interface declaration's identity, assigned
// by the checker when it first reifies that declaration's type. Two
// Object entries with identical shapes but different NominalIDs still get
// distinct TypeIds (see Interner.Object) even though they compare
// structurally equal when a caller asks for that explicitly.
type NominalID uint64

// PropertyInfo is one member of an Object/Callable shape.
type PropertyInfo struct {
	Name     string
	Type     TypeId
	Optional bool
	Readonly bool
}

// IndexSignature is a `[key: string]: V` / `[key: number]: V` entry.
type IndexSignature struct {
	ValueType TypeId
}

// ObjectShape backs the Object variant: a property list plus optional
// index signatures and an optional nominal tag.
type ObjectShape struct {
	Properties  []PropertyInfo
	StringIndex *IndexSignature
	NumberIndex *IndexSignature
	Nominal     NominalID // 0 if this object type has no nominal identity
	Flags       ObjectFlags
}

// Param is one parameter of a Signature.
type Param struct {
	Name     string
	Type     TypeId
	Optional bool
	Rest     bool
}

// Signature is one call or construct signature.
type Signature struct {
	TypeParams []TypeId
	Params     []Param
	ReturnType TypeId
	ThisType   TypeId // NoType if the signature doesn't constrain `this`
}

// MinArgs reports the number of required (non-optional, non-rest)
// leading parameters — the arity floor the subtype checker compares
// against when checking whether a target may have more required
// parameters than the source.
func (s Signature) MinArgs() int {
	n := 0
	for _, p := range s.Params {
		if p.Optional || p.Rest {
			break
		}
		n++
	}
	return n
}

// CallableShape backs the Callable variant: a hybrid object with call
// and/or construct signatures plus ordinary properties (e.g. a function
// that also carries static properties).
type CallableShape struct {
	CallSignatures      []Signature
	ConstructSignatures []Signature
	Properties          []PropertyInfo
}

// FunctionShape backs the Function variant, the common single-signature
// case (the overwhelmingly common shape; Callable exists for the rest).
type FunctionShape struct {
	Signature Signature
}

// TupleElement is one element of a Tuple variant.
type TupleElement struct {
	Type     TypeId
	Optional bool
	Rest     bool
	Name     string // "" if unlabeled
}

// TypeParameterInfo backs the TypeParameter variant.
type TypeParameterInfo struct {
	Name       string
	Constraint TypeId // NoType if unconstrained
	Default    TypeId // NoType if no default
}

// ReferenceInfo backs the Reference variant: a late-bound reference to a
// declared symbol by name and nominal tag. The checker and solver neither
// build nor resolve Reference entries; a recursive declaration resolves to
// the wide object type instead.
type ReferenceInfo struct {
	Name    string
	Nominal NominalID
}

// ApplicationInfo backs the Application variant: a generic instantiation
// not yet reduced (substituted) into its concrete form.
type ApplicationInfo struct {
	Base TypeId
	Args []TypeId
}

// ConditionalInfo backs the Conditional variant.
type ConditionalInfo struct {
	Check        TypeId
	Extends      TypeId
	True         TypeId
	False        TypeId
	Distributive bool
}

// Modifier distinguishes a mapped type's `+`/`-`/absent readonly or
// optional modifier.
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierAdd
	ModifierRemove
)

// MappedInfo backs the Mapped variant.
type MappedInfo struct {
	TypeParam TypeId // the TypeParameter entry bound by `in`
	Constraint TypeId
	NameRemap TypeId // the `as` template, NoType if no remap
	Template  TypeId
	Readonly  Modifier
	Optional  Modifier
}

// TemplateLiteralInfo backs the TemplateLiteral variant: alternating text
// atoms and member types. len(Atoms) == len(Types)+1.
type TemplateLiteralInfo struct {
	Atoms []string
	Types []TypeId
}

// EnumInfo backs the Enum variant.
type EnumInfo struct {
	Nominal    NominalID
	Structural TypeId // the underlying number/string representation
}

// entry is one row of the Interner's append-only table.
type entry struct {
	kind  Kind
	flags TypeFlags

	intrinsic IntrinsicKind

	strLit  string
	numLit  float64
	bigLit  string // decimal digits, sign-prefixed; avoids a math/big dependency for something never arithmetically combined
	boolLit bool

	uniqueSymbol NominalID

	members []TypeId // Union / Intersection

	object   *ObjectShape
	callable *CallableShape
	function *FunctionShape

	elem       TypeId // Array element
	tupleElems []TupleElement

	typeParam  *TypeParameterInfo
	boundIndex int

	reference *ReferenceInfo
	lazyDef   NominalID

	application *ApplicationInfo
	conditional *ConditionalInfo
	mapped      *MappedInfo

	keyOfInner TypeId
	indexObj   TypeId
	indexKey   TypeId

	templateLiteral *TemplateLiteralInfo

	readonlyInner TypeId

	typeQuery *ReferenceInfo

	enum *EnumInfo
}
