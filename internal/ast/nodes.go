package ast

import (
	"math/big"

	"github.com/mohsen1/tsz-sub030/internal/token"
)

// SourceFileData backs KindSourceFile.
type SourceFileData struct {
	FileName   string
	Statements []NodeIndex
	// EndOfFileToken records the final EOF token's span, used as the
	// insertion point for diagnostics about missing trailing syntax.
	EndOfFileToken token.Token
}

// IdentifierData backs KindIdentifier.
type IdentifierData struct {
	Text string
}

// LiteralData backs the scalar literal kinds (numeric, string, bigint,
// boolean, regex). Value holds the parsed value: float64, string,
// *big.Int, bool, or the raw regex source text.
type LiteralData struct {
	Value any
	Raw   string
}

// BigIntValue extracts the literal's *big.Int payload, for callers that
// know the kind is KindBigIntLiteral.
func (l LiteralData) BigIntValue() *big.Int {
	if v, ok := l.Value.(*big.Int); ok {
		return v
	}
	return nil
}

// TemplateLiteralData backs KindTemplateLiteral: a sequence of string
// "quasis" interleaved with expression holes, quasis having one more
// element than exprs whenever the template has substitutions.
type TemplateLiteralData struct {
	Quasis []string
	Exprs  []NodeIndex
}

// BinaryOperator enumerates the binary/assignment operators distinguished
// by BinaryData.Operator.
type BinaryOperator int

const (
	OpUnknown BinaryOperator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEquals
	OpNotEquals
	OpStrictEquals
	OpStrictNotEquals
	OpLessThan
	OpGreaterThan
	OpLessThanEquals
	OpGreaterThanEquals
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
	OpUnsignedShiftRight
	OpInstanceOf
	OpIn
	OpComma
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
)

// BinaryData backs KindBinaryExpression.
type BinaryData struct {
	Left     NodeIndex
	Right    NodeIndex
	Operator BinaryOperator
	OpToken  token.Token
}

// LogicalOperator enumerates &&, ||, ??.
type LogicalOperator int

const (
	LogAnd LogicalOperator = iota
	LogOr
	LogNullish
)

// LogicalData backs KindLogicalExpression.
type LogicalData struct {
	Left     NodeIndex
	Right    NodeIndex
	Operator LogicalOperator
}

// UnaryData backs KindUnaryExpression and KindUpdateExpression.
type UnaryData struct {
	Operand  NodeIndex
	Operator string // "+", "-", "!", "~", "typeof", "void", "delete", "++", "--"
	Prefix   bool
}

// CallData backs KindCallExpression and KindNewExpression.
type CallData struct {
	Callee        NodeIndex
	Arguments     []NodeIndex
	TypeArguments []NodeIndex
	OptionalChain bool
}

// MemberData backs KindMemberExpression.
type MemberData struct {
	Object       NodeIndex
	Property     NodeIndex // Identifier for `.prop`, Expression for `[expr]`
	Computed     bool
	OptionalChain bool
}

// ConditionalExprData backs KindConditionalExpression (`a ? b : c`).
type ConditionalExprData struct {
	Condition  NodeIndex
	WhenTrue   NodeIndex
	WhenFalse  NodeIndex
}

// AsExpressionData backs KindAsExpression and KindSatisfiesExpression.
type AsExpressionData struct {
	Expression NodeIndex
	Type       NodeIndex
}

// ParameterData backs KindParameter.
type ParameterData struct {
	Name         NodeIndex // Identifier (binding patterns collapse to their identifier text for this core)
	Type         NodeIndex // NONE if absent
	Initializer  NodeIndex // NONE if absent
	Optional     bool
	Rest         bool
	Modifiers    Modifiers
}

// Modifiers is a bitset of declaration modifiers.
type Modifiers uint16

const (
	ModExport Modifiers = 1 << iota
	ModDefault
	ModDeclare
	ModPublic
	ModPrivate
	ModProtected
	ModReadonly
	ModStatic
	ModAbstract
	ModAsync
	ModConst
	ModOverride
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

// FunctionData backs KindFunctionDeclaration, KindFunctionExpression,
// KindMethodDeclaration, KindGetAccessor, KindSetAccessor,
// KindConstructorDeclaration.
type FunctionData struct {
	Name          NodeIndex // Identifier or NONE for anonymous
	TypeParams    []NodeIndex
	Parameters    []NodeIndex
	ReturnType    NodeIndex // NONE if absent
	Body          NodeIndex // Block, or NONE for an overload signature / ambient declaration
	Modifiers     Modifiers
	IsGenerator   bool
	IsAsync       bool
}

// ArrowFunctionData backs KindArrowFunction.
type ArrowFunctionData struct {
	TypeParams []NodeIndex
	Parameters []NodeIndex
	ReturnType NodeIndex
	Body       NodeIndex // Block, or an expression node when the body is a concise arrow body
	IsAsync    bool
}

// VarDeclListData backs KindVariableDeclarationList, and VarDeclKind
// distinguishes var/let/const.
type VarDeclListData struct {
	Declarations []NodeIndex
	Kind         VarDeclKind
	Modifiers    Modifiers
}

type VarDeclKind int

const (
	VarKindVar VarDeclKind = iota
	VarKindLet
	VarKindConst
)

// VarDeclData backs KindVariableDeclaration.
type VarDeclData struct {
	Name        NodeIndex // Identifier
	Type        NodeIndex // NONE if absent
	Initializer NodeIndex // NONE if absent
	Definite    bool      // `let x!: string` definite-assignment assertion
}

// BlockData backs KindBlock.
type BlockData struct {
	Statements []NodeIndex
}

// IfData backs KindIfStatement.
type IfData struct {
	Condition NodeIndex
	Then      NodeIndex
	Else      NodeIndex // NONE if absent
}

// LoopData backs for/while/do-while/for-in/for-of statements. Which fields
// are populated depends on Kind: For uses Init/Condition/Update/Body;
// ForIn/ForOf use Declared/Expr/Body; While/DoWhile use Condition/Body.
type LoopData struct {
	Init      NodeIndex
	Condition NodeIndex
	Update    NodeIndex
	Declared  NodeIndex // the loop variable declaration list for for-in/for-of
	Expr      NodeIndex // the iterated expression for for-in/for-of
	Body      NodeIndex
	IsAwait   bool // `for await (...)`
}

// ReturnData backs KindReturnStatement, KindThrowStatement (Argument is
// the thrown expression).
type ReturnData struct {
	Argument NodeIndex // NONE for a bare `return;`
}

// ExprStmtData backs KindExpressionStatement.
type ExprStmtData struct {
	Expression NodeIndex
}

// TypeAliasData backs KindTypeAliasDeclaration.
type TypeAliasData struct {
	Name       NodeIndex
	TypeParams []NodeIndex
	Type       NodeIndex
	Modifiers  Modifiers
}

// InterfaceData backs KindInterfaceDeclaration. A type-literal node (e.g.
// an inline `{ ... }` type annotation) is also represented with
// InterfaceData, just with Name left NONE.
type InterfaceData struct {
	Name       NodeIndex
	TypeParams []NodeIndex
	Extends    []NodeIndex
	Members    []NodeIndex
	Modifiers  Modifiers
}

// TryData backs KindTryStatement.
type TryData struct {
	Block   NodeIndex
	Catch   NodeIndex // KindCatchClause, NONE if absent
	Finally NodeIndex // NONE if absent
}

// CatchClauseData backs KindCatchClause.
type CatchClauseData struct {
	Param NodeIndex // Identifier, NONE for a parameterless catch
	Body  NodeIndex
}

// SwitchData backs KindSwitchStatement.
type SwitchData struct {
	Discriminant NodeIndex
	Clauses      []NodeIndex
}

// CaseClauseData backs KindCaseClause and KindDefaultClause.
type CaseClauseData struct {
	Test       NodeIndex // NONE for the default clause
	Statements []NodeIndex
}

// LabeledStatementData backs KindLabeledStatement.
type LabeledStatementData struct {
	Label     NodeIndex
	Statement NodeIndex
}

// BreakContinueData backs KindBreakStatement and KindContinueStatement.
type BreakContinueData struct {
	Label NodeIndex // Identifier, NONE if absent
}

// EnumData backs KindEnumDeclaration.
type EnumData struct {
	Name      NodeIndex
	Members   []NodeIndex
	Modifiers Modifiers
}

// EnumMemberData backs KindEnumMember.
type EnumMemberData struct {
	Name        NodeIndex
	Initializer NodeIndex // NONE if absent
}

// ClassData backs KindClassDeclaration.
type ClassData struct {
	Name       NodeIndex
	TypeParams []NodeIndex
	Extends    NodeIndex // NONE if absent
	Implements []NodeIndex
	Members    []NodeIndex
	Modifiers  Modifiers
}

// PropertyData backs KindPropertyDeclaration (class fields) and
// KindTypeLiteral members / interface members when representing a
// property signature.
type PropertyData struct {
	Name        NodeIndex
	Type        NodeIndex // NONE if absent
	Initializer NodeIndex // NONE if absent
	Optional    bool
	Modifiers   Modifiers
	Computed    bool
}

// TypeRefData backs KindTypeReference.
type TypeRefData struct {
	Name          NodeIndex // qualified-name identifier
	TypeArguments []NodeIndex
}

// UnionIntersectionData backs KindUnionType and KindIntersectionType.
type UnionIntersectionData struct {
	Types []NodeIndex
}

// ArrayTypeData backs KindArrayType (`T[]`).
type ArrayTypeData struct {
	ElementType NodeIndex
}

// TupleTypeData backs KindTupleType.
type TupleTypeData struct {
	ElementTypes []NodeIndex
}

// FunctionTypeData backs KindFunctionType and KindConstructorType.
type FunctionTypeData struct {
	TypeParams []NodeIndex
	Parameters []NodeIndex
	ReturnType NodeIndex
}

// ConditionalTypeData backs KindConditionalType
// (`CheckType extends ExtendsType ? TrueType : FalseType`).
type ConditionalTypeData struct {
	CheckType   NodeIndex
	ExtendsType NodeIndex
	TrueType    NodeIndex
	FalseType   NodeIndex
}

// MappedTypeData backs KindMappedType (`{ [K in T]: U }`).
type MappedTypeData struct {
	TypeParameter NodeIndex // the `K in T` type parameter
	Constraint    NodeIndex // T
	NameType      NodeIndex // `as` clause remapping, NONE if absent
	Type          NodeIndex // U
	Optional      MappedModifier
	Readonly      MappedModifier
}

// MappedModifier captures the +/-/absent prefix on `readonly`/`?` in a
// mapped type.
type MappedModifier int

const (
	MappedModifierNone MappedModifier = iota
	MappedModifierPlus
	MappedModifierMinus
)

// IndexedAccessTypeData backs KindIndexedAccessType (`T[K]`).
type IndexedAccessTypeData struct {
	ObjectType NodeIndex
	IndexType  NodeIndex
}

// KeyOfTypeData backs KindKeyOfType and, more generally, KindTypeOperator
// (`keyof T`, `readonly T[]`, `unique symbol`).
type KeyOfTypeData struct {
	Operand  NodeIndex
	Operator string // "keyof", "readonly", "unique"
}

// TypeParameterData backs KindTypeParameter.
type TypeParameterData struct {
	Name       NodeIndex
	Constraint NodeIndex // NONE if absent
	Default    NodeIndex // NONE if absent
	Variance   Variance
}

type Variance int

const (
	VarianceInvariant Variance = iota
	VarianceIn
	VarianceOut
)

// ObjectLiteralData backs KindObjectLiteralExpression.
type ObjectLiteralData struct {
	Properties []NodeIndex
}

// PropertyAssignData backs KindPropertyAssignment and
// KindShorthandPropertyAssignment.
type PropertyAssignData struct {
	Name      NodeIndex
	Value     NodeIndex // for shorthand, equals Name's identifier use
	Computed  bool
	Shorthand bool
}

// ArrayLiteralData backs KindArrayLiteralExpression.
type ArrayLiteralData struct {
	Elements []NodeIndex
}
