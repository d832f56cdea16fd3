package typesystem

// TypeFlags classifies a TypeId the way tsc's own TypeFlags enum does —
// bit-compatible in spirit (same groupings), not in literal values, since
// this interner's variant tag (Kind, in types.go) already carries the
// primary discriminator and flags exist for the composite membership tests
// the solver needs (IsStringLike, IsNullable, ...).
type TypeFlags uint32

const (
	FlagAny TypeFlags = 1 << iota
	FlagUnknown
	FlagString
	FlagNumber
	FlagBoolean
	FlagEnum
	FlagBigInt
	FlagStringLiteral
	FlagNumberLiteral
	FlagBooleanLiteral
	FlagBigIntLiteral
	FlagESSymbol
	FlagUniqueESSymbol
	FlagVoid
	FlagUndefined
	FlagNull
	FlagNever
	FlagTypeParameter
	FlagObject
	FlagUnion
	FlagIntersection
	FlagIndex
	FlagIndexedAccess
	FlagConditional
	FlagSubstitution
	FlagNonPrimitive
	FlagTemplateLiteral
	FlagError
)

const (
	FlagAnyOrUnknown = FlagAny | FlagUnknown
	FlagNullable     = FlagUndefined | FlagNull
	FlagLiteral      = FlagStringLiteral | FlagNumberLiteral | FlagBigIntLiteral | FlagBooleanLiteral
	FlagStringLike   = FlagString | FlagStringLiteral | FlagTemplateLiteral
	FlagNumberLike   = FlagNumber | FlagNumberLiteral | FlagEnum
	FlagBigIntLike   = FlagBigInt | FlagBigIntLiteral
	FlagBooleanLike  = FlagBoolean | FlagBooleanLiteral
	FlagESSymbolLike = FlagESSymbol | FlagUniqueESSymbol
	FlagVoidLike     = FlagVoid | FlagUndefined
	FlagPrimitive    = FlagStringLike | FlagNumberLike | FlagBigIntLike | FlagBooleanLike |
		FlagESSymbolLike | FlagVoidLike | FlagNull
	FlagUnionOrIntersection = FlagUnion | FlagIntersection
	FlagStructured          = FlagObject | FlagUnion | FlagIntersection
	FlagTypeVariable        = FlagTypeParameter | FlagIndexedAccess
	FlagInstantiable        = FlagTypeVariable | FlagConditional | FlagSubstitution | FlagIndex | FlagTemplateLiteral
)

func (f TypeFlags) Has(o TypeFlags) bool { return f&o != 0 }

// ObjectFlags refines the Object/Callable/Function variants the way tsc's
// ObjectFlags enum refines ObjectType — which structural origin produced
// the shape (class, interface, tuple, fresh object literal, ...).
type ObjectFlags uint32

const (
	ObjClass ObjectFlags = 1 << iota
	ObjInterface
	ObjReference
	ObjTuple
	ObjAnonymous
	ObjMapped
	ObjInstantiated
	ObjObjectLiteral
	ObjFreshLiteral
)

func (f ObjectFlags) Has(o ObjectFlags) bool { return f&o != 0 }
