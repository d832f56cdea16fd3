// Package token defines the TypeScript token vocabulary produced by the
// scanner and consumed by the parser.
package token

// Type identifies the lexical category of a Token.
type Type int

// Token is one lexical unit of source text.
//
// Literal carries the parsed value for literal tokens: string for
// StringLiteral/TemplateHead/TemplateMiddle/TemplateTail/NoSubstitutionTemplate,
// float64 for NumericLiteral, *big.Int for BigIntLiteral. Identifier,
// keyword and PrivateIdentifier tokens carry their text as a string, and
// RegularExpressionLiteral its source text. Punctuation and EOF carry nil.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
	Column  int
	// Start and End are half-open byte offsets into the source text,
	// independent of Line/Column (which are for diagnostic display only).
	Start int
	End   int
	// PrecedingLineBreak records whether a line terminator appeared in the
	// trivia immediately before this token; the parser's ASI logic and the
	// `in_disallow_in`-style restricted productions consult it.
	PrecedingLineBreak bool
}

const (
	Illegal Type = iota
	EOF

	// Identifiers and literals.
	Identifier
	PrivateIdentifier
	NumericLiteral
	BigIntLiteral
	StringLiteral
	RegularExpressionLiteral
	NoSubstitutionTemplateLiteral
	TemplateHead
	TemplateMiddle
	TemplateTail

	// Punctuation.
	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	Dot
	DotDotDot
	Semicolon
	Comma
	QuestionDot
	LessThan
	GreaterThan
	LessThanEquals
	GreaterThanEquals
	EqualsEquals
	ExclamationEquals
	EqualsEqualsEquals
	ExclamationEqualsEquals
	EqualsGreaterThan
	Plus
	Minus
	Asterisk
	AsteriskAsterisk
	Slash
	Percent
	PlusPlus
	MinusMinus
	LessThanLessThan
	GreaterThanGreaterThan
	GreaterThanGreaterThanGreaterThan
	Ampersand
	Bar
	Caret
	Exclamation
	Tilde
	AmpersandAmpersand
	BarBar
	QuestionQuestion
	Question
	Colon
	Equals
	PlusEquals
	MinusEquals
	AsteriskEquals
	AsteriskAsteriskEquals
	SlashEquals
	PercentEquals
	LessThanLessThanEquals
	GreaterThanGreaterThanEquals
	GreaterThanGreaterThanGreaterThanEquals
	AmpersandEquals
	BarEquals
	CaretEquals
	AmpersandAmpersandEquals
	BarBarEquals
	QuestionQuestionEquals
	At
	BacktickToken

	// Keywords (a subset large enough to drive spec scenarios; extended
	// freely since Type is just an int enum).
	BreakKeyword
	CaseKeyword
	CatchKeyword
	ClassKeyword
	ConstKeyword
	ContinueKeyword
	DebuggerKeyword
	DefaultKeyword
	DeleteKeyword
	DoKeyword
	ElseKeyword
	EnumKeyword
	ExportKeyword
	ExtendsKeyword
	FalseKeyword
	FinallyKeyword
	ForKeyword
	FunctionKeyword
	IfKeyword
	ImportKeyword
	InKeyword
	InstanceOfKeyword
	NewKeyword
	NullKeyword
	ReturnKeyword
	SuperKeyword
	SwitchKeyword
	ThisKeyword
	ThrowKeyword
	TrueKeyword
	TryKeyword
	TypeOfKeyword
	VarKeyword
	VoidKeyword
	WhileKeyword
	WithKeyword

	// Contextual keywords (identifiers with special meaning in position).
	AsKeyword
	AsyncKeyword
	AwaitKeyword
	ConstructorKeyword
	DeclareKeyword
	GetKeyword
	InferKeyword
	InterfaceKeyword
	IsKeyword
	KeyOfKeyword
	LetKeyword
	ModuleKeyword
	NamespaceKeyword
	NeverKeyword
	OfKeyword
	ReadonlyKeyword
	RequireKeyword
	SetKeyword
	StaticKeyword
	TypeKeyword
	UndefinedKeyword
	UniqueKeyword
	UnknownKeyword
	YieldKeyword
	SatisfiesKeyword
	OutKeyword
	OverrideKeyword
	AbstractKeyword
	ImplementsKeyword
	InterfaceBodyKeyword
	PackageKeyword
	PrivateKeyword
	ProtectedKeyword
	PublicKeyword

	// Trivia token types. The scanner always skips trivia and never
	// produces these.
	NewLineTrivia
	WhitespaceTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia
	ShebangTrivia
)

var keywords = map[string]Type{
	"break":      BreakKeyword,
	"case":       CaseKeyword,
	"catch":      CatchKeyword,
	"class":      ClassKeyword,
	"const":      ConstKeyword,
	"continue":   ContinueKeyword,
	"debugger":   DebuggerKeyword,
	"default":    DefaultKeyword,
	"delete":     DeleteKeyword,
	"do":         DoKeyword,
	"else":       ElseKeyword,
	"enum":       EnumKeyword,
	"export":     ExportKeyword,
	"extends":    ExtendsKeyword,
	"false":      FalseKeyword,
	"finally":    FinallyKeyword,
	"for":        ForKeyword,
	"function":   FunctionKeyword,
	"if":         IfKeyword,
	"import":     ImportKeyword,
	"in":         InKeyword,
	"instanceof": InstanceOfKeyword,
	"new":        NewKeyword,
	"null":       NullKeyword,
	"return":     ReturnKeyword,
	"super":      SuperKeyword,
	"switch":     SwitchKeyword,
	"this":       ThisKeyword,
	"throw":      ThrowKeyword,
	"true":       TrueKeyword,
	"try":        TryKeyword,
	"typeof":     TypeOfKeyword,
	"var":        VarKeyword,
	"void":       VoidKeyword,
	"while":      WhileKeyword,
	"with":       WithKeyword,

	"as":           AsKeyword,
	"async":        AsyncKeyword,
	"await":        AwaitKeyword,
	"constructor":  ConstructorKeyword,
	"declare":      DeclareKeyword,
	"get":          GetKeyword,
	"infer":        InferKeyword,
	"interface":    InterfaceKeyword,
	"is":           IsKeyword,
	"keyof":        KeyOfKeyword,
	"let":          LetKeyword,
	"module":       ModuleKeyword,
	"namespace":    NamespaceKeyword,
	"never":        NeverKeyword,
	"of":           OfKeyword,
	"readonly":     ReadonlyKeyword,
	"require":      RequireKeyword,
	"set":          SetKeyword,
	"static":       StaticKeyword,
	"type":         TypeKeyword,
	"undefined":    UndefinedKeyword,
	"unique":       UniqueKeyword,
	"unknown":      UnknownKeyword,
	"yield":        YieldKeyword,
	"satisfies":    SatisfiesKeyword,
	"out":          OutKeyword,
	"override":     OverrideKeyword,
	"abstract":     AbstractKeyword,
	"implements":   ImplementsKeyword,
	"package":      PackageKeyword,
	"private":      PrivateKeyword,
	"protected":    ProtectedKeyword,
	"public":       PublicKeyword,
}

// LookupIdent classifies an identifier-shaped lexeme as a keyword token
// type, or returns Identifier if it is not reserved.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return Identifier
}

// IsContextualKeyword reports whether typ is a keyword that is also valid
// as a plain identifier in non-reserved positions (e.g. `as`, `type`,
// `async`) — the parser consults this before rejecting an identifier use.
func IsContextualKeyword(typ Type) bool {
	switch typ {
	case AsKeyword, AsyncKeyword, AwaitKeyword, ConstructorKeyword, DeclareKeyword,
		GetKeyword, InferKeyword, InterfaceKeyword, IsKeyword, KeyOfKeyword, LetKeyword,
		ModuleKeyword, NamespaceKeyword, NeverKeyword, OfKeyword, ReadonlyKeyword,
		RequireKeyword, SetKeyword, StaticKeyword, TypeKeyword, UndefinedKeyword,
		UniqueKeyword, UnknownKeyword, YieldKeyword, SatisfiesKeyword, OutKeyword,
		OverrideKeyword, AbstractKeyword:
		return true
	default:
		return false
	}
}

// String is used by diagnostics and tests to render a human-readable name.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

var typeNames = map[Type]string{
	Illegal: "Illegal", EOF: "EOF",
	Identifier: "Identifier", PrivateIdentifier: "PrivateIdentifier",
	NumericLiteral: "NumericLiteral", BigIntLiteral: "BigIntLiteral",
	StringLiteral: "StringLiteral", RegularExpressionLiteral: "RegularExpressionLiteral",
	NoSubstitutionTemplateLiteral: "NoSubstitutionTemplateLiteral",
	TemplateHead:                  "TemplateHead", TemplateMiddle: "TemplateMiddle", TemplateTail: "TemplateTail",
	OpenBrace: "{", CloseBrace: "}", OpenParen: "(", CloseParen: ")",
	OpenBracket: "[", CloseBracket: "]", Dot: ".", DotDotDot: "...",
	Semicolon: ";", Comma: ",", QuestionDot: "?.",
	LessThan: "<", GreaterThan: ">", LessThanEquals: "<=", GreaterThanEquals: ">=",
	EqualsEquals: "==", ExclamationEquals: "!=", EqualsEqualsEquals: "===",
	ExclamationEqualsEquals: "!==", EqualsGreaterThan: "=>",
	Plus: "+", Minus: "-", Asterisk: "*", AsteriskAsterisk: "**", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
	LessThanLessThan: "<<", GreaterThanGreaterThan: ">>", GreaterThanGreaterThanGreaterThan: ">>>",
	Ampersand: "&", Bar: "|", Caret: "^", Exclamation: "!", Tilde: "~",
	AmpersandAmpersand: "&&", BarBar: "||", QuestionQuestion: "??", Question: "?", Colon: ":",
	Equals: "=", At: "@", BacktickToken: "`",
	TypeKeyword: "type", InterfaceKeyword: "interface", KeyOfKeyword: "keyof",
	ReadonlyKeyword: "readonly", InferKeyword: "infer", IsKeyword: "is",
	AsKeyword: "as", SatisfiesKeyword: "satisfies", ExtendsKeyword: "extends",
}
