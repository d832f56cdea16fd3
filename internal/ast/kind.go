package ast

// Kind discriminates the syntactic shape of a node. It is deliberately a
// flat enum rather than a type hierarchy: the arena stores a Kind plus an
// index into the matching side table, and callers that need to know "is
// this an expression" use the IsExpression/IsType helpers
// below rather than a Go interface, since nodes are indices, not values.
type Kind uint16

const (
	KindInvalid Kind = iota

	KindSourceFile

	// Expressions.
	KindIdentifier
	KindNumericLiteral
	KindStringLiteral
	KindBigIntLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindUndefinedLiteral
	KindRegularExpressionLiteral
	KindTemplateLiteral
	KindThisExpression
	KindSuperExpression
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindBinaryExpression
	KindLogicalExpression
	KindUnaryExpression
	KindUpdateExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindNonNullExpression
	KindParenthesizedExpression
	KindArrowFunction
	KindFunctionExpression
	KindAsExpression
	KindSatisfiesExpression
	KindTypeOfExpression
	KindAwaitExpression
	KindYieldExpression
	KindSpreadElement
	KindTaggedTemplateExpression

	// Statements.
	KindExpressionStatement
	KindVariableStatement
	KindVariableDeclarationList
	KindVariableDeclaration
	KindBlock
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindLabeledStatement
	KindEmptyStatement
	KindDebuggerStatement

	// Declarations.
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindModuleDeclaration
	KindImportDeclaration
	KindExportDeclaration
	KindExportAssignment
	KindParameter
	KindPropertyDeclaration
	KindMethodDeclaration
	KindGetAccessor
	KindSetAccessor
	KindConstructorDeclaration
	KindHeritageClause
	KindTypeParameter

	// Type nodes.
	KindTypeReference
	KindUnionType
	KindIntersectionType
	KindArrayType
	KindTupleType
	KindFunctionType
	KindConstructorType
	KindTypeLiteral
	KindParenthesizedType
	KindConditionalType
	KindInferType
	KindMappedType
	KindIndexedAccessType
	KindKeyOfType
	KindTypeOperator
	KindTemplateLiteralType
	KindLiteralType
	KindTypeQuery
	KindOptionalType
	KindRestType
	KindNamedTupleMember
	KindImportType
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KindInvalid:    "Invalid",
	KindSourceFile: "SourceFile",

	KindIdentifier:               "Identifier",
	KindNumericLiteral:           "NumericLiteral",
	KindStringLiteral:            "StringLiteral",
	KindBigIntLiteral:            "BigIntLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindNullLiteral:              "NullLiteral",
	KindUndefinedLiteral:         "UndefinedLiteral",
	KindRegularExpressionLiteral: "RegularExpressionLiteral",
	KindTemplateLiteral:          "TemplateLiteral",
	KindThisExpression:           "ThisExpression",
	KindSuperExpression:          "SuperExpression",
	KindArrayLiteralExpression:   "ArrayLiteralExpression",
	KindObjectLiteralExpression:  "ObjectLiteralExpression",
	KindPropertyAssignment:       "PropertyAssignment",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMemberExpression:         "MemberExpression",
	KindArrowFunction:            "ArrowFunction",
	KindFunctionExpression:       "FunctionExpression",
	KindAsExpression:             "AsExpression",
	KindSatisfiesExpression:      "SatisfiesExpression",
	KindTypeOfExpression:         "TypeOfExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindYieldExpression:          "YieldExpression",
	KindSpreadElement:            "SpreadElement",

	KindExpressionStatement:     "ExpressionStatement",
	KindVariableStatement:       "VariableStatement",
	KindVariableDeclarationList: "VariableDeclarationList",
	KindVariableDeclaration:     "VariableDeclaration",
	KindBlock:                   "Block",
	KindIfStatement:             "IfStatement",
	KindForStatement:            "ForStatement",
	KindForInStatement:          "ForInStatement",
	KindForOfStatement:          "ForOfStatement",
	KindWhileStatement:          "WhileStatement",
	KindDoWhileStatement:        "DoWhileStatement",
	KindReturnStatement:         "ReturnStatement",
	KindBreakStatement:          "BreakStatement",
	KindContinueStatement:       "ContinueStatement",
	KindThrowStatement:          "ThrowStatement",
	KindTryStatement:            "TryStatement",
	KindCatchClause:             "CatchClause",
	KindSwitchStatement:         "SwitchStatement",
	KindCaseClause:              "CaseClause",
	KindDefaultClause:           "DefaultClause",
	KindLabeledStatement:        "LabeledStatement",
	KindEmptyStatement:          "EmptyStatement",
	KindDebuggerStatement:       "DebuggerStatement",

	KindFunctionDeclaration:    "FunctionDeclaration",
	KindClassDeclaration:       "ClassDeclaration",
	KindInterfaceDeclaration:   "InterfaceDeclaration",
	KindTypeAliasDeclaration:   "TypeAliasDeclaration",
	KindEnumDeclaration:        "EnumDeclaration",
	KindEnumMember:             "EnumMember",
	KindModuleDeclaration:      "ModuleDeclaration",
	KindImportDeclaration:      "ImportDeclaration",
	KindExportDeclaration:      "ExportDeclaration",
	KindExportAssignment:       "ExportAssignment",
	KindParameter:              "Parameter",
	KindPropertyDeclaration:    "PropertyDeclaration",
	KindMethodDeclaration:      "MethodDeclaration",
	KindGetAccessor:            "GetAccessor",
	KindSetAccessor:            "SetAccessor",
	KindConstructorDeclaration: "ConstructorDeclaration",
	KindHeritageClause:         "HeritageClause",
	KindTypeParameter:          "TypeParameter",

	KindTypeReference:       "TypeReference",
	KindUnionType:           "UnionType",
	KindIntersectionType:    "IntersectionType",
	KindArrayType:           "ArrayType",
	KindTupleType:           "TupleType",
	KindFunctionType:        "FunctionType",
	KindConstructorType:     "ConstructorType",
	KindTypeLiteral:         "TypeLiteral",
	KindParenthesizedType:   "ParenthesizedType",
	KindConditionalType:     "ConditionalType",
	KindInferType:           "InferType",
	KindMappedType:          "MappedType",
	KindIndexedAccessType:   "IndexedAccessType",
	KindKeyOfType:           "KeyOfType",
	KindTypeOperator:        "TypeOperator",
	KindTemplateLiteralType: "TemplateLiteralType",
	KindLiteralType:         "LiteralType",
	KindTypeQuery:           "TypeQuery",
	KindOptionalType:        "OptionalType",
	KindRestType:            "RestType",
	KindNamedTupleMember:    "NamedTupleMember",
	KindImportType:          "ImportType",
}

// IsExpression reports whether k is one of the expression kinds.
func (k Kind) IsExpression() bool {
	switch k {
	case KindIdentifier, KindNumericLiteral, KindStringLiteral, KindBigIntLiteral,
		KindBooleanLiteral, KindNullLiteral, KindUndefinedLiteral, KindRegularExpressionLiteral,
		KindTemplateLiteral, KindThisExpression, KindSuperExpression, KindArrayLiteralExpression,
		KindObjectLiteralExpression, KindBinaryExpression, KindLogicalExpression, KindUnaryExpression,
		KindUpdateExpression, KindConditionalExpression, KindCallExpression, KindNewExpression,
		KindMemberExpression, KindNonNullExpression, KindParenthesizedExpression, KindArrowFunction,
		KindFunctionExpression, KindAsExpression, KindSatisfiesExpression, KindTypeOfExpression,
		KindAwaitExpression, KindYieldExpression, KindSpreadElement, KindTaggedTemplateExpression:
		return true
	default:
		return false
	}
}

// IsType reports whether k is one of the type-node kinds.
func (k Kind) IsType() bool {
	switch k {
	case KindTypeReference, KindUnionType, KindIntersectionType, KindArrayType, KindTupleType,
		KindFunctionType, KindConstructorType, KindTypeLiteral, KindParenthesizedType,
		KindConditionalType, KindInferType, KindMappedType, KindIndexedAccessType, KindKeyOfType,
		KindTypeOperator, KindTemplateLiteralType, KindLiteralType, KindTypeQuery, KindOptionalType,
		KindRestType, KindNamedTupleMember, KindImportType:
		return true
	default:
		return false
	}
}
