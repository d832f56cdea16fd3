package parser

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// parseType is the entry point for the type grammar, called with curToken
// already on the first token of the type. It returns with curToken left on
// the type's last token, matching the convention parseExpression uses.
func (p *Parser) parseType() ast.NodeIndex {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		return ast.NONE
	}
	return p.withCtxType(p.parseConditionalType)
}

func (p *Parser) withCtxType(fn func() ast.NodeIndex) ast.NodeIndex {
	saved := p.ctx
	p.ctx |= CtxTypeContext
	result := fn()
	p.ctx = saved
	return result
}

// parseConditionalType parses `CheckType extends ExtendsType ? True : False`,
// falling back to the union grammar when no `extends` follows.
func (p *Parser) parseConditionalType() ast.NodeIndex {
	startTok := p.curToken
	check := p.parseUnionType()
	if !p.peekTokenIs(token.ExtendsKeyword) {
		return check
	}
	p.nextToken() // now on 'extends'
	p.nextToken()
	extendsType := p.parseUnionTypeNoConditional()
	if !p.expectPeek(token.Question) {
		return check
	}
	p.nextToken()
	trueType := p.parseType()
	if !p.expectPeek(token.Colon) {
		return check
	}
	p.nextToken()
	falseType := p.parseType()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddConditionalType(sp, ast.ConditionalTypeData{
		CheckType: check, ExtendsType: extendsType, TrueType: trueType, FalseType: falseType,
	})
}

// parseUnionTypeNoConditional parses the ExtendsType operand of a
// conditional type, which in TypeScript's grammar excludes a further bare
// conditional (it must be parenthesized to nest) to avoid `extends` chains
// parsing ambiguously; this is what parseUnionType already provides since
// it does not recurse into parseConditionalType itself.
func (p *Parser) parseUnionTypeNoConditional() ast.NodeIndex {
	return p.parseUnionType()
}

func (p *Parser) parseUnionType() ast.NodeIndex {
	startTok := p.curToken
	leadingBar := false
	if p.curTokenIs(token.Bar) {
		leadingBar = true
		p.nextToken()
	}
	_ = leadingBar
	first := p.parseIntersectionType()
	if !p.peekTokenIs(token.Bar) {
		return first
	}
	types := []ast.NodeIndex{first}
	for p.peekTokenIs(token.Bar) {
		p.nextToken()
		p.nextToken()
		types = append(types, p.parseIntersectionType())
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddUnionIntersection(ast.KindUnionType, sp, ast.UnionIntersectionData{Types: types})
}

func (p *Parser) parseIntersectionType() ast.NodeIndex {
	startTok := p.curToken
	if p.curTokenIs(token.Ampersand) {
		p.nextToken()
	}
	first := p.parseTypeOperatorType()
	if !p.peekTokenIs(token.Ampersand) {
		return first
	}
	types := []ast.NodeIndex{first}
	for p.peekTokenIs(token.Ampersand) {
		p.nextToken()
		p.nextToken()
		types = append(types, p.parseTypeOperatorType())
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddUnionIntersection(ast.KindIntersectionType, sp, ast.UnionIntersectionData{Types: types})
}

// parseTypeOperatorType handles the prefix type operators `keyof`,
// `readonly`, `unique`, and `infer`, all of which bind to a single
// following type/operator application rather than the full union grammar.
func (p *Parser) parseTypeOperatorType() ast.NodeIndex {
	startTok := p.curToken
	switch p.curToken.Type {
	case token.KeyOfKeyword:
		p.nextToken()
		operand := p.parseTypeOperatorType()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddKeyOfType(ast.KindKeyOfType, sp, ast.KeyOfTypeData{Operand: operand, Operator: "keyof"})
	case token.ReadonlyKeyword:
		p.nextToken()
		operand := p.parseTypeOperatorType()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddKeyOfType(ast.KindTypeOperator, sp, ast.KeyOfTypeData{Operand: operand, Operator: "readonly"})
	case token.UniqueKeyword:
		p.nextToken()
		operand := p.parseTypeOperatorType()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddKeyOfType(ast.KindTypeOperator, sp, ast.KeyOfTypeData{Operand: operand, Operator: "unique"})
	case token.InferKeyword:
		p.nextToken()
		if !p.curTokenIs(token.Identifier) {
			return ast.NONE
		}
		name := p.parseIdentifierExpr()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddTypeParameter(sp, ast.TypeParameterData{Name: name})
	default:
		return p.parsePostfixType()
	}
}

// parsePostfixType parses a primary type and then any trailing `[]` (array
// type) or `[K]` (indexed access type) suffixes, left-to-right.
func (p *Parser) parsePostfixType() ast.NodeIndex {
	startTok := p.curToken
	base := p.parsePrimaryType()
	for p.peekTokenIs(token.OpenBracket) && !p.peekToken.PrecedingLineBreak {
		p.nextToken()
		if p.peekTokenIs(token.CloseBracket) {
			p.nextToken()
			sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
			base = p.arena.AddArrayType(sp, ast.ArrayTypeData{ElementType: base})
			continue
		}
		p.nextToken()
		index := p.parseType()
		if !p.expectPeek(token.CloseBracket) {
			break
		}
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		base = p.arena.AddIndexedAccessType(sp, ast.IndexedAccessTypeData{ObjectType: base, IndexType: index})
	}
	return base
}

func (p *Parser) parsePrimaryType() ast.NodeIndex {
	startTok := p.curToken
	switch p.curToken.Type {
	case token.OpenParen:
		return p.parseParenTypeOrFunctionType()
	case token.OpenBracket:
		return p.parseTupleType()
	case token.OpenBrace:
		return p.parseMappedOrObjectType()
	case token.TypeOfKeyword:
		p.nextToken()
		expr := p.parseExpression(precCall)
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddKeyOfType(ast.KindTypeQuery, sp, ast.KeyOfTypeData{Operand: expr, Operator: "typeof"})
	case token.StringLiteral, token.NumericLiteral, token.BigIntLiteral, token.TrueKeyword, token.FalseKeyword:
		lit := p.litFromCurrent()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddLiteral(ast.KindLiteralType, sp, lit.value, lit.raw)
	case token.NoSubstitutionTemplateLiteral, token.TemplateHead:
		return p.parseTemplateLiteralType()
	case token.Minus:
		// Negative numeric literal type, e.g. `-1`.
		p.nextToken()
		lit := p.litFromCurrent()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddLiteral(ast.KindLiteralType, sp, negate(lit.value), "-"+lit.raw)
	default:
		return p.parseTypeReferenceOrIdentifierType()
	}
}

type litValue struct {
	value any
	raw   string
}

func (p *Parser) litFromCurrent() litValue {
	return litValue{value: p.curToken.Literal, raw: p.curToken.Lexeme}
}

func negate(v any) any {
	if f, ok := v.(float64); ok {
		return -f
	}
	return v
}

// parseTypeReferenceOrIdentifierType handles `T`, `ns.T`, `T<A, B>`, and
// the reserved type keywords (`any`, `unknown`, `never`, `void`, etc.),
// which are represented as plain TypeRefData with no type arguments. A
// dotted name (`E.A`, an enum member used as a type) collapses to one
// synthetic identifier carrying the full dotted text, rather than only
// its last segment, so the checker can resolve the qualifier.
func (p *Parser) parseTypeReferenceOrIdentifierType() ast.NodeIndex {
	startTok := p.curToken
	name := p.parseIdentifierExpr()
	for p.peekTokenIs(token.Dot) {
		p.nextToken()
		p.nextToken()
		qualified := p.arena.Identifier(name).Text + "." + p.curToken.Lexeme
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		name = p.arena.AddIdentifier(sp, qualified)
	}
	var typeArgs []ast.NodeIndex
	if p.peekTokenIs(token.LessThan) {
		p.nextToken()
		typeArgs = p.parseTypeArgumentListBody()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddTypeRef(sp, ast.TypeRefData{Name: name, TypeArguments: typeArgs})
}

// parseTypeArgumentListBody parses the comma-separated types inside `< ... >`
// given curToken already positioned on `<`, consuming the closing `>`
// (splitting it out of a combined `>>`/`>>>`/`>=` token via
// splitAngleClose when the scanner had greedily combined it with a
// following operator).
func (p *Parser) parseTypeArgumentListBody() []ast.NodeIndex {
	var args []ast.NodeIndex
	if p.peekTokenIs(token.GreaterThan) || p.peekClosesAngle() {
		p.consumeAngleClose()
		return args
	}
	p.nextToken()
	args = append(args, p.parseType())
	for p.peekTokenIs(token.Comma) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseType())
	}
	p.consumeAngleClose()
	return args
}

// peekClosesAngle reports whether peekToken is a combined `>`-family token
// that begins with a `>` and can therefore be narrowed to close this
// angle-bracket list.
func (p *Parser) peekClosesAngle() bool {
	switch p.peekToken.Type {
	case token.GreaterThan, token.GreaterThanGreaterThan, token.GreaterThanGreaterThanGreaterThan,
		token.GreaterThanEquals, token.GreaterThanGreaterThanEquals, token.GreaterThanGreaterThanGreaterThanEquals:
		return true
	default:
		return false
	}
}

// consumeAngleClose advances past one `>` that closes this angle-bracket
// list. When the scanner produced a combined token (the lookahead runs
// into a second `>` closing an outer generic, or a trailing `=`), it
// splits the combined token into a narrower one and leaves the remainder
// as the new peek token, mirroring the teacher's splitRshift mechanism.
func (p *Parser) consumeAngleClose() {
	if !p.peekClosesAngle() {
		p.errors.Add(diagnostics.NewSyntaxError(diagnostics.ErrExpectedToken, p.peekToken, "'>' expected"))
		return
	}
	remainder, ok := splitOneGreaterThan(p.peekToken.Type)
	if !ok {
		p.nextToken()
		return
	}
	narrowed := p.peekToken
	narrowed.Type = token.GreaterThan
	narrowed.End = narrowed.Start + 1
	narrowed.Lexeme = ">"
	rest := p.peekToken
	rest.Type = remainder
	rest.Start = narrowed.End
	rest.Lexeme = rest.Type.String()

	p.curToken = narrowed
	p.peekToken = rest
}

// splitOneGreaterThan strips one leading '>' off a combined token,
// returning the token type of what remains (or ok=false if the input was
// already a bare '>' and nothing remains to split off).
func splitOneGreaterThan(t token.Type) (token.Type, bool) {
	switch t {
	case token.GreaterThan:
		return token.Illegal, false
	case token.GreaterThanGreaterThan:
		return token.GreaterThan, true
	case token.GreaterThanGreaterThanGreaterThan:
		return token.GreaterThanGreaterThan, true
	case token.GreaterThanEquals:
		return token.Equals, true
	case token.GreaterThanGreaterThanEquals:
		return token.GreaterThanEquals, true
	case token.GreaterThanGreaterThanGreaterThanEquals:
		return token.GreaterThanGreaterThanEquals, true
	default:
		return token.Illegal, false
	}
}

// tryParseTypeArgumentList speculatively parses `<...>` as a type argument
// list, used to disambiguate `f<T>(x)` (a generic call) from `a < b`. On
// failure it restores the snapshot, which drops any diagnostics the
// attempt recorded, so to the caller it looks as if it never happened.
func (p *Parser) tryParseTypeArgumentList() ([]ast.NodeIndex, bool) {
	if !p.curTokenIs(token.LessThan) {
		return nil, false
	}
	snap := p.save()
	errsBefore := len(p.errors.Diagnostics())
	args := p.parseTypeArgumentListBody()
	if len(p.errors.Diagnostics()) > errsBefore {
		p.restore(snap)
		return nil, false
	}
	return args, true
}

func (p *Parser) parseParenTypeOrFunctionType() ast.NodeIndex {
	startTok := p.curToken
	snap := p.save()
	if params, ok := p.tryParseArrowParameterList(); ok && p.peekTokenIs(token.EqualsGreaterThan) {
		p.nextToken()
		p.nextToken()
		ret := p.parseType()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddFunctionType(ast.KindFunctionType, sp, ast.FunctionTypeData{Parameters: params, ReturnType: ret})
	}
	p.restore(snap)
	p.nextToken()
	inner := p.parseType()
	p.expectPeek(token.CloseParen)
	return inner
}

func (p *Parser) parseTupleType() ast.NodeIndex {
	startTok := p.curToken
	var elems []ast.NodeIndex
	if p.peekTokenIs(token.CloseBracket) {
		p.nextToken()
	} else {
		p.nextToken()
		elems = append(elems, p.parseTupleElement())
		for p.peekTokenIs(token.Comma) {
			p.nextToken()
			if p.peekTokenIs(token.CloseBracket) {
				break
			}
			p.nextToken()
			elems = append(elems, p.parseTupleElement())
		}
		p.expectPeek(token.CloseBracket)
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddTupleType(sp, ast.TupleTypeData{ElementTypes: elems})
}

func (p *Parser) parseTupleElement() ast.NodeIndex {
	startTok := p.curToken
	if p.curTokenIs(token.DotDotDot) {
		p.nextToken()
		elem := p.parseType()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddKeyOfType(ast.KindRestType, sp, ast.KeyOfTypeData{Operand: elem, Operator: "..."})
	}
	return p.parseType()
}

// parseMappedOrObjectType disambiguates `{ [K in T]: U }` (mapped type)
// from `{ a: T; b: U }` (inline object/type-literal) by looking for the
// `[` ... `in` shape right after the opening brace.
func (p *Parser) parseMappedOrObjectType() ast.NodeIndex {
	startTok := p.curToken
	if p.looksLikeMappedType() {
		return p.parseMappedType(startTok)
	}
	return p.parseTypeLiteral(startTok)
}

func (p *Parser) looksLikeMappedType() bool {
	snap := p.save()
	defer p.restore(snap)
	readonly := false
	if p.peekTokenIs(token.ReadonlyKeyword) || (p.peekTokenIs(token.Plus) || p.peekTokenIs(token.Minus)) {
		p.nextToken()
		readonly = true
	}
	_ = readonly
	if !p.peekTokenIs(token.OpenBracket) {
		return false
	}
	p.nextToken()
	if !p.peekTokenIs(token.Identifier) {
		return false
	}
	p.nextToken()
	return p.peekTokenIs(token.InKeyword)
}

func (p *Parser) parseMappedType(startTok token.Token) ast.NodeIndex {
	readonly := ast.MappedModifierNone
	switch {
	case p.peekTokenIs(token.Plus):
		p.nextToken()
		p.nextToken() // 'readonly'
		readonly = ast.MappedModifierPlus
	case p.peekTokenIs(token.Minus):
		p.nextToken()
		p.nextToken()
		readonly = ast.MappedModifierMinus
	case p.peekTokenIs(token.ReadonlyKeyword):
		p.nextToken()
		readonly = ast.MappedModifierPlus
	}
	if !p.expectPeek(token.OpenBracket) {
		return ast.NONE
	}
	if !p.expectPeek(token.Identifier) {
		return ast.NONE
	}
	tpName := p.parseIdentifierExpr()
	if !p.expectPeek(token.InKeyword) {
		return ast.NONE
	}
	p.nextToken()
	constraint := p.parseType()
	tpSp := ast.Span{Start: p.arena.SpanOf(tpName).Start, End: uint32(p.curToken.End)}
	tp := p.arena.AddTypeParameter(tpSp, ast.TypeParameterData{Name: tpName, Constraint: constraint})

	nameType := ast.NONE
	if p.peekTokenIs(token.AsKeyword) {
		p.nextToken()
		p.nextToken()
		nameType = p.parseType()
	}
	if !p.expectPeek(token.CloseBracket) {
		return ast.NONE
	}
	optional := ast.MappedModifierNone
	switch {
	case p.peekTokenIs(token.Question):
		p.nextToken()
		optional = ast.MappedModifierPlus
	case p.peekTokenIs(token.Plus):
		p.nextToken()
		p.expectPeek(token.Question)
		optional = ast.MappedModifierPlus
	case p.peekTokenIs(token.Minus):
		p.nextToken()
		p.expectPeek(token.Question)
		optional = ast.MappedModifierMinus
	}
	typ := ast.NONE
	if p.peekTokenIs(token.Colon) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}
	if p.peekTokenIs(token.Semicolon) {
		p.nextToken()
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddMappedType(sp, ast.MappedTypeData{
		TypeParameter: tp, Constraint: constraint, NameType: nameType, Type: typ,
		Optional: optional, Readonly: readonly,
	})
}

// parseTypeLiteral parses `{ member; member; ... }` as a structural type
// literal; each member becomes a PropertyData node, a method signature
// `name(params): T` being a property whose type is the function type.
// Call, construct and index signatures are not parsed.
func (p *Parser) parseTypeLiteral(startTok token.Token) ast.NodeIndex {
	var members []ast.NodeIndex
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		members = append(members, p.parsePropertySignature())
		for p.peekTokenIs(token.Semicolon) || p.peekTokenIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddInterface(sp, ast.InterfaceData{Members: members})
}

func (p *Parser) parsePropertySignature() ast.NodeIndex {
	startTok := p.curToken
	readonly := false
	if p.curTokenIs(token.ReadonlyKeyword) {
		readonly = true
		p.nextToken()
	}
	computed := false
	var name ast.NodeIndex
	if p.curTokenIs(token.OpenBracket) {
		computed = true
		p.nextToken()
		name = p.parseExpression(precAssign)
		p.expectPeek(token.CloseBracket)
	} else {
		name = p.parseIdentifierExpr()
	}
	optional := false
	if p.peekTokenIs(token.Question) {
		p.nextToken()
		optional = true
	}
	typ := ast.NONE
	if p.peekTokenIs(token.OpenParen) {
		p.nextToken()
		params := p.parseParameterList()
		ret := ast.NONE
		if p.peekTokenIs(token.Colon) {
			p.nextToken()
			p.nextToken()
			ret = p.parseType()
		}
		fsp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		typ = p.arena.AddFunctionType(ast.KindFunctionType, fsp, ast.FunctionTypeData{Parameters: params, ReturnType: ret})
	} else if p.peekTokenIs(token.Colon) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}
	var mods ast.Modifiers
	if readonly {
		mods |= ast.ModReadonly
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddProperty(ast.KindPropertyDeclaration, sp, ast.PropertyData{Name: name, Type: typ, Optional: optional, Modifiers: mods, Computed: computed})
}

// parseTemplateLiteralType parses `` `prefix-${T}-suffix` `` as a
// TemplateLiteralType, reusing TemplateLiteralData to hold the quasis and
// substituted types (Exprs holds type nodes here, not expressions).
func (p *Parser) parseTemplateLiteralType() ast.NodeIndex {
	startTok := p.curToken
	quasis := []string{asStringLiteral(p.curToken)}
	var subs []ast.NodeIndex
	if p.curToken.Type == token.NoSubstitutionTemplateLiteral {
		return p.arena.AddTemplateLiteral(ast.Span{Start: uint32(startTok.Start), End: uint32(startTok.End)}, ast.TemplateLiteralData{Quasis: quasis})
	}
	for {
		p.nextToken()
		t := p.parseType()
		subs = append(subs, t)
		if !p.expectPeek(token.CloseBrace) {
			break
		}
		tail := p.scanner.ResumeTemplate()
		quasis = append(quasis, asStringLiteral(tail))
		p.curToken = tail
		if tail.Type == token.TemplateTail {
			p.peekToken = p.scanner.NextToken()
			break
		}
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	tlSp := p.arena.AddTemplateLiteral(sp, ast.TemplateLiteralData{Quasis: quasis, Exprs: subs})
	return tlSp
}

// parseTypeParameterList parses `<T, U extends V = D, ...>` given curToken
// already on `<`.
func (p *Parser) parseTypeParameterList() []ast.NodeIndex {
	var params []ast.NodeIndex
	if p.peekClosesAngle() {
		p.consumeAngleClose()
		return params
	}
	p.nextToken()
	params = append(params, p.parseTypeParameter())
	for p.peekTokenIs(token.Comma) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseTypeParameter())
	}
	p.consumeAngleClose()
	return params
}

func (p *Parser) parseTypeParameter() ast.NodeIndex {
	startTok := p.curToken
	variance := ast.VarianceInvariant
	if p.curTokenIs(token.InKeyword) {
		variance = ast.VarianceIn
		p.nextToken()
	} else if p.curTokenIs(token.OutKeyword) {
		variance = ast.VarianceOut
		p.nextToken()
	}
	name := p.parseIdentifierExpr()
	constraint := ast.NONE
	if p.peekTokenIs(token.ExtendsKeyword) {
		p.nextToken()
		p.nextToken()
		constraint = p.parseType()
	}
	def := ast.NONE
	if p.peekTokenIs(token.Equals) {
		p.nextToken()
		p.nextToken()
		def = p.parseType()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddTypeParameter(sp, ast.TypeParameterData{Name: name, Constraint: constraint, Default: def, Variance: variance})
}
