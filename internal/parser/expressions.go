package parser

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// Operator precedence levels, lowest to highest. Mirrors the classic
// Pratt-parser precedence table, extended with TypeScript's `as`/
// `satisfies` (same level as the relational comparisons) and
// the nullish-coalescing/optional-chaining operators.
const (
	precLowest = iota
	precComma
	precAssign
	precConditional // a ? b : c
	precNullish     // ??
	precLogicalOr   // ||
	precLogicalAnd  // &&
	precBitOr       // |
	precBitXor      // ^
	precBitAnd      // &
	precEquality    // == != === !==
	precRelational  // < > <= >= instanceof in as satisfies
	precShift       // << >> >>>
	precAdditive    // + -
	precMultiplicative // * / %
	precExponent    // **
	precUnary       // ! ~ + - typeof void delete await ++x --x
	precPostfix     // x++ x--
	precCall        // foo() foo.bar foo?.() foo[bar]
)

var precedences = map[token.Type]int{
	token.Comma:                         precComma,
	token.Equals:                        precAssign,
	token.PlusEquals:                    precAssign,
	token.MinusEquals:                   precAssign,
	token.AsteriskEquals:                precAssign,
	token.SlashEquals:                   precAssign,
	token.PercentEquals:                 precAssign,
	token.AsteriskAsteriskEquals:        precAssign,
	token.LessThanLessThanEquals:        precAssign,
	token.GreaterThanGreaterThanEquals:  precAssign,
	token.AmpersandEquals:               precAssign,
	token.BarEquals:                     precAssign,
	token.CaretEquals:                   precAssign,
	token.AmpersandAmpersandEquals:      precAssign,
	token.BarBarEquals:                  precAssign,
	token.QuestionQuestionEquals:        precAssign,
	token.Question:                      precConditional,
	token.QuestionQuestion:              precNullish,
	token.BarBar:                        precLogicalOr,
	token.AmpersandAmpersand:            precLogicalAnd,
	token.Bar:                           precBitOr,
	token.Caret:                         precBitXor,
	token.Ampersand:                     precBitAnd,
	token.EqualsEquals:                  precEquality,
	token.ExclamationEquals:             precEquality,
	token.EqualsEqualsEquals:            precEquality,
	token.ExclamationEqualsEquals:       precEquality,
	token.LessThan:                      precRelational,
	token.GreaterThan:                   precRelational,
	token.LessThanEquals:                precRelational,
	token.GreaterThanEquals:             precRelational,
	token.InstanceOfKeyword:             precRelational,
	token.InKeyword:                     precRelational,
	token.AsKeyword:                     precRelational,
	token.SatisfiesKeyword:              precRelational,
	token.LessThanLessThan:              precShift,
	token.GreaterThanGreaterThan:        precShift,
	token.GreaterThanGreaterThanGreaterThan: precShift,
	token.Plus:                          precAdditive,
	token.Minus:                         precAdditive,
	token.Asterisk:                      precMultiplicative,
	token.Slash:                         precMultiplicative,
	token.Percent:                       precMultiplicative,
	token.AsteriskAsterisk:              precExponent,
	token.OpenParen:                     precCall,
	token.Dot:                           precCall,
	token.QuestionDot:                   precCall,
	token.OpenBracket:                   precCall,
	token.PlusPlus:                      precPostfix,
	token.MinusMinus:                    precPostfix,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) registerExpressionParseFns() {
	p.prefixParseFns = map[token.Type]func() ast.NodeIndex{
		token.Identifier:        p.parseIdentifierExpr,
		token.PrivateIdentifier: p.parseIdentifierExpr,
		token.ThisKeyword:       p.parseIdentifierExpr,
		token.SuperKeyword:      p.parseIdentifierExpr,
		token.NumericLiteral:    p.parseNumericLiteral,
		token.BigIntLiteral:     p.parseBigIntLiteral,
		token.StringLiteral:     p.parseStringLiteral,
		token.RegularExpressionLiteral: p.parseRegexLiteral,
		token.NoSubstitutionTemplateLiteral: p.parseTemplateLiteral,
		token.TemplateHead:      p.parseTemplateLiteral,
		token.TrueKeyword:       p.parseBooleanLiteral,
		token.FalseKeyword:      p.parseBooleanLiteral,
		token.NullKeyword:       p.parseNullLiteral,
		token.UndefinedKeyword:  p.parseIdentifierExpr,
		token.OpenParen:         p.parseParenOrArrow,
		token.OpenBracket:       p.parseArrayLiteral,
		token.OpenBrace:         p.parseObjectLiteral,
		token.Exclamation:       p.parseUnaryExpr,
		token.Tilde:             p.parseUnaryExpr,
		token.Plus:              p.parseUnaryExpr,
		token.Minus:             p.parseUnaryExpr,
		token.PlusPlus:          p.parseUnaryExpr,
		token.MinusMinus:        p.parseUnaryExpr,
		token.TypeOfKeyword:     p.parseUnaryExpr,
		token.VoidKeyword:       p.parseUnaryExpr,
		token.DeleteKeyword:     p.parseUnaryExpr,
		token.AwaitKeyword:      p.parseAwaitExpr,
		token.YieldKeyword:      p.parseYieldExpr,
		token.NewKeyword:        p.parseNewExpr,
		token.FunctionKeyword:   func() ast.NodeIndex { return p.parseFunctionExpr(false) },
		token.AsyncKeyword:      p.parseAsyncPrefixed,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.Plus: p.parseBinaryExpr, token.Minus: p.parseBinaryExpr,
		token.Asterisk: p.parseBinaryExpr, token.Slash: p.parseBinaryExpr, token.Percent: p.parseBinaryExpr,
		token.EqualsEquals: p.parseBinaryExpr, token.ExclamationEquals: p.parseBinaryExpr,
		token.EqualsEqualsEquals: p.parseBinaryExpr, token.ExclamationEqualsEquals: p.parseBinaryExpr,
		token.LessThan: p.parseRelationalOrGenericCall, token.GreaterThan: p.parseBinaryExpr,
		token.LessThanEquals: p.parseBinaryExpr, token.GreaterThanEquals: p.parseBinaryExpr,
		token.Ampersand: p.parseBinaryExpr, token.Bar: p.parseBinaryExpr, token.Caret: p.parseBinaryExpr,
		token.LessThanLessThan: p.parseBinaryExpr, token.GreaterThanGreaterThan: p.parseBinaryExpr,
		token.GreaterThanGreaterThanGreaterThan: p.parseBinaryExpr,
		token.InstanceOfKeyword: p.parseBinaryExpr, token.InKeyword: p.parseBinaryExpr,
		token.AsteriskAsterisk: p.parseRightAssocInfixExpr,
		token.AmpersandAmpersand: p.parseLogicalExpr, token.BarBar: p.parseLogicalExpr, token.QuestionQuestion: p.parseLogicalExpr,
		token.Equals: p.parseAssignExpr, token.PlusEquals: p.parseAssignExpr, token.MinusEquals: p.parseAssignExpr,
		token.AsteriskEquals: p.parseAssignExpr, token.SlashEquals: p.parseAssignExpr, token.PercentEquals: p.parseAssignExpr,
		token.AmpersandEquals: p.parseAssignExpr, token.BarEquals: p.parseAssignExpr, token.CaretEquals: p.parseAssignExpr,
		token.AmpersandAmpersandEquals: p.parseAssignExpr, token.BarBarEquals: p.parseAssignExpr, token.QuestionQuestionEquals: p.parseAssignExpr,
		token.Question: p.parseConditionalExpr,
		token.OpenParen: p.parseCallExpr,
		token.Dot: p.parseMemberExpr, token.QuestionDot: p.parseMemberExpr,
		token.OpenBracket: p.parseIndexExpr,
		token.PlusPlus: p.parsePostfixExpr, token.MinusMinus: p.parsePostfixExpr,
		token.Comma: p.parseCommaExpr,
		token.AsKeyword: p.parseAsExpr, token.SatisfiesKeyword: p.parseAsExpr,
	}
}

// parseExpression is the Pratt-parser core: it reads one prefix production,
// then repeatedly extends it with infix/postfix productions whose
// precedence exceeds the caller's minimum, exactly the shape the teacher's
// parser uses for its own expression grammar.
func (p *Parser) parseExpression(precedence int) ast.NodeIndex {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.inRecursionRecovery = true
			p.errors.Add(diagnostics.NewInternalError(p.curToken, "expression nesting exceeds maximum depth %d", MaxRecursionDepth))
			p.skipToStatementBoundary()
			p.inRecursionRecovery = false
		}
		return ast.NONE
	}

	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Type)
		return ast.NONE
	}
	left := prefix()

	for !p.peekTokenIs(token.Semicolon) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifierExpr() ast.NodeIndex {
	tok := p.curToken
	sp := ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)}
	switch tok.Type {
	case token.ThisKeyword:
		return p.arena.AddSimple(ast.KindThisExpression, sp)
	case token.SuperKeyword:
		return p.arena.AddSimple(ast.KindSuperExpression, sp)
	case token.UndefinedKeyword:
		return p.arena.AddLiteral(ast.KindUndefinedLiteral, sp, nil, tok.Lexeme)
	default:
		return p.arena.AddIdentifier(sp, tok.Lexeme)
	}
}

func (p *Parser) parseNumericLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindNumericLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		tok.Literal, tok.Lexeme)
}

func (p *Parser) parseBigIntLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindBigIntLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		tok.Literal, tok.Lexeme)
}

func (p *Parser) parseStringLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindStringLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		tok.Literal, tok.Lexeme)
}

func (p *Parser) parseRegexLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindRegularExpressionLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		tok.Literal, tok.Lexeme)
}

func (p *Parser) parseBooleanLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindBooleanLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		tok.Type == token.TrueKeyword, tok.Lexeme)
}

func (p *Parser) parseNullLiteral() ast.NodeIndex {
	tok := p.curToken
	return p.arena.AddLiteral(ast.KindNullLiteral, ast.Span{Start: uint32(tok.Start), End: uint32(tok.End)},
		nil, tok.Lexeme)
}

// parseTemplateLiteral consumes a template literal starting at curToken
// (either a complete NoSubstitutionTemplateLiteral or a TemplateHead),
// interleaving expression holes with the scanner's ResumeTemplate calls.
func (p *Parser) parseTemplateLiteral() ast.NodeIndex {
	startTok := p.curToken
	quasis := []string{asStringLiteral(p.curToken)}
	var exprs []ast.NodeIndex

	if p.curToken.Type == token.NoSubstitutionTemplateLiteral {
		return p.arena.AddTemplateLiteral(ast.Span{Start: uint32(startTok.Start), End: uint32(startTok.End)},
			ast.TemplateLiteralData{Quasis: quasis})
	}

	for {
		p.nextToken()
		expr := p.parseExpression(precLowest)
		exprs = append(exprs, expr)
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
	return p.arena.AddTemplateLiteral(sp, ast.TemplateLiteralData{Quasis: quasis, Exprs: exprs})
}

func asStringLiteral(tok token.Token) string {
	if s, ok := tok.Literal.(string); ok {
		return s
	}
	return ""
}

func (p *Parser) parseUnaryExpr() ast.NodeIndex {
	startTok := p.curToken
	op := startTok.Lexeme
	switch startTok.Type {
	case token.TypeOfKeyword:
		op = "typeof"
	case token.VoidKeyword:
		op = "void"
	case token.DeleteKeyword:
		op = "delete"
	}
	p.nextToken()
	operand := p.parseExpression(precUnary)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	kind := ast.KindUnaryExpression
	if startTok.Type == token.PlusPlus || startTok.Type == token.MinusMinus {
		kind = ast.KindUpdateExpression
	}
	return p.arena.AddUnary(kind, sp, ast.UnaryData{Operand: operand, Operator: op, Prefix: true})
}

func (p *Parser) parseAwaitExpr() ast.NodeIndex {
	startTok := p.curToken
	p.nextToken()
	operand := p.parseExpression(precUnary)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddUnary(ast.KindAwaitExpression, sp, ast.UnaryData{Operand: operand, Operator: "await", Prefix: true})
}

func (p *Parser) parseYieldExpr() ast.NodeIndex {
	startTok := p.curToken
	delegate := false
	if p.peekTokenIs(token.Asterisk) {
		p.nextToken()
		delegate = true
	}
	operand := ast.NONE
	if !p.peekTokenIs(token.Semicolon) && !p.peekTokenIs(token.CloseParen) && !p.peekTokenIs(token.CloseBrace) &&
		!p.peekTokenIs(token.CloseBracket) && !p.peekTokenIs(token.Comma) && !p.peekToken.PrecedingLineBreak {
		p.nextToken()
		operand = p.parseExpression(precAssign)
	}
	op := "yield"
	if delegate {
		op = "yield*"
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddUnary(ast.KindYieldExpression, sp, ast.UnaryData{Operand: operand, Operator: op, Prefix: true})
}

func (p *Parser) parsePostfixExpr(left ast.NodeIndex) ast.NodeIndex {
	tok := p.curToken
	sp := p.arena.SpanOf(left)
	return p.arena.AddUnary(ast.KindUpdateExpression, ast.Span{Start: sp.Start, End: uint32(tok.End)},
		ast.UnaryData{Operand: left, Operator: tok.Lexeme, Prefix: false})
}

func (p *Parser) parseBinaryExpr(left ast.NodeIndex) ast.NodeIndex {
	opTok := p.curToken
	op := binaryOperatorFor(opTok.Type)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
	return p.arena.AddBinary(sp, ast.BinaryData{Left: left, Right: right, Operator: op, OpToken: opTok})
}

// parseRightAssocInfixExpr handles `**`, the one right-associative binary
// operator in the grammar: it recurses at precedence-1 so a chain like
// `2 ** 3 ** 2` groups as `2 ** (3 ** 2)`.
func (p *Parser) parseRightAssocInfixExpr(left ast.NodeIndex) ast.NodeIndex {
	opTok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence - 1)
	sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
	return p.arena.AddBinary(sp, ast.BinaryData{Left: left, Right: right, Operator: ast.OpPow, OpToken: opTok})
}

func (p *Parser) parseLogicalExpr(left ast.NodeIndex) ast.NodeIndex {
	opTok := p.curToken
	var op ast.LogicalOperator
	switch opTok.Type {
	case token.AmpersandAmpersand:
		op = ast.LogAnd
	case token.BarBar:
		op = ast.LogOr
	default:
		op = ast.LogNullish
	}
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
	return p.arena.AddLogical(sp, ast.LogicalData{Left: left, Right: right, Operator: op})
}

func (p *Parser) parseAssignExpr(left ast.NodeIndex) ast.NodeIndex {
	opTok := p.curToken
	op := assignOperatorFor(opTok.Type)
	p.nextToken()
	right := p.parseExpression(precAssign - 1) // right-associative
	sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
	return p.arena.AddBinary(sp, ast.BinaryData{Left: left, Right: right, Operator: op, OpToken: opTok})
}

func (p *Parser) parseConditionalExpr(cond ast.NodeIndex) ast.NodeIndex {
	p.nextToken()
	whenTrue := p.parseExpression(precAssign)
	if !p.expectPeek(token.Colon) {
		return cond
	}
	p.nextToken()
	whenFalse := p.parseExpression(precAssign)
	sp := ast.Span{Start: p.arena.SpanOf(cond).Start, End: uint32(p.curToken.End)}
	return p.arena.AddConditionalExpr(sp, ast.ConditionalExprData{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse})
}

func (p *Parser) parseCommaExpr(left ast.NodeIndex) ast.NodeIndex {
	p.nextToken()
	right := p.parseExpression(precComma)
	sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
	return p.arena.AddBinary(sp, ast.BinaryData{Left: left, Right: right, Operator: ast.OpComma})
}

func (p *Parser) parseAsExpr(expr ast.NodeIndex) ast.NodeIndex {
	p.nextToken()
	typ := p.parseType()
	sp := ast.Span{Start: p.arena.SpanOf(expr).Start, End: uint32(p.curToken.End)}
	return p.arena.AddAsExpression(ast.KindAsExpression, sp, ast.AsExpressionData{Expression: expr, Type: typ})
}

func (p *Parser) parseMemberExpr(obj ast.NodeIndex) ast.NodeIndex {
	optional := p.curTokenIs(token.QuestionDot)
	if !p.expectPeek(token.Identifier) {
		return obj
	}
	prop := p.parseIdentifierExpr()
	sp := ast.Span{Start: p.arena.SpanOf(obj).Start, End: uint32(p.curToken.End)}
	return p.arena.AddMember(sp, ast.MemberData{Object: obj, Property: prop, Computed: false, OptionalChain: optional})
}

func (p *Parser) parseIndexExpr(obj ast.NodeIndex) ast.NodeIndex {
	p.nextToken()
	index := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseBracket) {
		return obj
	}
	sp := ast.Span{Start: p.arena.SpanOf(obj).Start, End: uint32(p.curToken.End)}
	return p.arena.AddMember(sp, ast.MemberData{Object: obj, Property: index, Computed: true})
}

func (p *Parser) parseCallExpr(callee ast.NodeIndex) ast.NodeIndex {
	args := p.parseExpressionList(token.CloseParen)
	sp := ast.Span{Start: p.arena.SpanOf(callee).Start, End: uint32(p.curToken.End)}
	return p.arena.AddCall(ast.KindCallExpression, sp, ast.CallData{Callee: callee, Arguments: args})
}

func (p *Parser) parseExpressionList(end token.Type) []ast.NodeIndex {
	var list []ast.NodeIndex
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(precAssign))
	for p.peekTokenIs(token.Comma) {
		p.nextToken()
		if p.peekTokenIs(end) { // trailing comma
			break
		}
		p.nextToken()
		list = append(list, p.parseExpression(precAssign))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseNewExpr() ast.NodeIndex {
	startTok := p.curToken
	p.nextToken()
	callee := p.parseExpression(precCall)
	var args []ast.NodeIndex
	if p.peekTokenIs(token.OpenParen) {
		p.nextToken()
		args = p.parseExpressionList(token.CloseParen)
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddCall(ast.KindNewExpression, sp, ast.CallData{Callee: callee, Arguments: args})
}

func (p *Parser) parseArrayLiteral() ast.NodeIndex {
	startTok := p.curToken
	elems := p.parseExpressionList(token.CloseBracket)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddArrayLiteral(sp, ast.ArrayLiteralData{Elements: elems})
}

func (p *Parser) parseObjectLiteral() ast.NodeIndex {
	startTok := p.curToken
	var props []ast.NodeIndex
	if p.peekTokenIs(token.CloseBrace) {
		p.nextToken()
	} else {
		p.nextToken()
		props = append(props, p.parsePropertyAssignment())
		for p.peekTokenIs(token.Comma) {
			p.nextToken()
			if p.peekTokenIs(token.CloseBrace) {
				break
			}
			p.nextToken()
			props = append(props, p.parsePropertyAssignment())
		}
		p.expectPeek(token.CloseBrace)
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddObjectLiteral(sp, ast.ObjectLiteralData{Properties: props})
}

func (p *Parser) parsePropertyAssignment() ast.NodeIndex {
	startTok := p.curToken
	computed := false
	var name ast.NodeIndex
	if p.curTokenIs(token.OpenBracket) {
		computed = true
		p.nextToken()
		name = p.parseExpression(precAssign)
		p.expectPeek(token.CloseBracket)
	} else if p.curTokenIs(token.DotDotDot) {
		p.nextToken()
		value := p.parseExpression(precAssign)
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddPropertyAssign(ast.KindSpreadAssignment, sp, ast.PropertyAssignData{Value: value})
	} else {
		name = p.parseIdentifierExpr()
	}
	if p.peekTokenIs(token.Colon) {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(precAssign)
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddPropertyAssign(ast.KindPropertyAssignment, sp, ast.PropertyAssignData{Name: name, Value: value, Computed: computed})
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddPropertyAssign(ast.KindShorthandPropertyAssignment, sp, ast.PropertyAssignData{Name: name, Value: name, Computed: computed, Shorthand: true})
}

func binaryOperatorFor(t token.Type) ast.BinaryOperator {
	switch t {
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Asterisk:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	case token.Percent:
		return ast.OpMod
	case token.AsteriskAsterisk:
		return ast.OpPow
	case token.EqualsEquals:
		return ast.OpEquals
	case token.ExclamationEquals:
		return ast.OpNotEquals
	case token.EqualsEqualsEquals:
		return ast.OpStrictEquals
	case token.ExclamationEqualsEquals:
		return ast.OpStrictNotEquals
	case token.LessThan:
		return ast.OpLessThan
	case token.GreaterThan:
		return ast.OpGreaterThan
	case token.LessThanEquals:
		return ast.OpLessThanEquals
	case token.GreaterThanEquals:
		return ast.OpGreaterThanEquals
	case token.Ampersand:
		return ast.OpBitAnd
	case token.Bar:
		return ast.OpBitOr
	case token.Caret:
		return ast.OpBitXor
	case token.LessThanLessThan:
		return ast.OpShiftLeft
	case token.GreaterThanGreaterThan:
		return ast.OpShiftRight
	case token.GreaterThanGreaterThanGreaterThan:
		return ast.OpUnsignedShiftRight
	case token.InstanceOfKeyword:
		return ast.OpInstanceOf
	case token.InKeyword:
		return ast.OpIn
	default:
		return ast.OpUnknown
	}
}

func assignOperatorFor(t token.Type) ast.BinaryOperator {
	switch t {
	case token.Equals:
		return ast.OpAssign
	case token.PlusEquals:
		return ast.OpAddAssign
	case token.MinusEquals:
		return ast.OpSubAssign
	case token.AsteriskEquals:
		return ast.OpMulAssign
	case token.SlashEquals:
		return ast.OpDivAssign
	case token.PercentEquals:
		return ast.OpModAssign
	default:
		return ast.OpAssign
	}
}

// parseRelationalOrGenericCall disambiguates `a < b` (less-than) from
// `f<T>(x)` (a generic call) by saving the cursor, speculatively parsing a
// type-argument list, and committing only if it is immediately followed by
// `(` — otherwise the comparison interpretation wins. This mirrors the
// teacher's snapshot/restore pattern for grammar ambiguities it cannot
// resolve with one token of lookahead.
func (p *Parser) parseRelationalOrGenericCall(left ast.NodeIndex) ast.NodeIndex {
	snap := p.save()
	typeArgs, ok := p.tryParseTypeArgumentList()
	if ok && p.peekTokenIs(token.OpenParen) {
		p.nextToken()
		args := p.parseExpressionList(token.CloseParen)
		sp := ast.Span{Start: p.arena.SpanOf(left).Start, End: uint32(p.curToken.End)}
		return p.arena.AddCall(ast.KindCallExpression, sp, ast.CallData{Callee: left, Arguments: args, TypeArguments: typeArgs})
	}
	p.restore(snap)
	return p.parseBinaryExpr(left)
}

func (p *Parser) parseParenOrArrow() ast.NodeIndex {
	snap := p.save()
	if params, ok := p.tryParseArrowParameterList(); ok && (p.peekTokenIs(token.EqualsGreaterThan) || p.peekTokenIs(token.Colon)) {
		return p.finishArrowFunction(params, false)
	}
	p.restore(snap)

	p.nextToken()
	expr := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseParen) {
		return expr
	}
	return expr
}

func (p *Parser) finishArrowFunction(params []ast.NodeIndex, isAsync bool) ast.NodeIndex {
	returnType := ast.NONE
	if p.peekTokenIs(token.Colon) {
		p.nextToken()
		p.nextToken()
		returnType = p.parseType()
	}
	if !p.expectPeek(token.EqualsGreaterThan) {
		return ast.NONE
	}
	startTok := p.curToken
	var body ast.NodeIndex
	if p.peekTokenIs(token.OpenBrace) {
		p.nextToken()
		body = p.parseBlock()
	} else {
		p.nextToken()
		body = p.parseExpression(precAssign)
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddArrowFunction(sp, ast.ArrowFunctionData{Parameters: params, ReturnType: returnType, Body: body, IsAsync: isAsync})
}

// tryParseArrowParameterList speculatively parses `(` ... `)` as an arrow
// function's parameter list. Callers restore the snapshot when the list is
// not followed by an arrow, and restore drops any diagnostics the
// abandoned attempt recorded.
func (p *Parser) tryParseArrowParameterList() ([]ast.NodeIndex, bool) {
	if !p.curTokenIs(token.OpenParen) {
		if p.curTokenIs(token.Identifier) {
			name := p.parseIdentifierExpr()
			param := p.arena.AddParameter(p.arena.SpanOf(name), ast.ParameterData{Name: name})
			return []ast.NodeIndex{param}, true
		}
		return nil, false
	}
	var params []ast.NodeIndex
	if p.peekTokenIs(token.CloseParen) {
		p.nextToken()
		return params, true
	}
	for {
		p.nextToken()
		if !p.curTokenIs(token.Identifier) && !p.curTokenIs(token.DotDotDot) {
			return nil, false
		}
		rest := false
		if p.curTokenIs(token.DotDotDot) {
			rest = true
			p.nextToken()
			if !p.curTokenIs(token.Identifier) {
				return nil, false
			}
		}
		name := p.parseIdentifierExpr()
		optional := false
		if p.peekTokenIs(token.Question) {
			p.nextToken()
			optional = true
		}
		typ := ast.NONE
		if p.peekTokenIs(token.Colon) {
			p.nextToken()
			p.nextToken()
			typ = p.parseType()
		}
		init := ast.NONE
		if p.peekTokenIs(token.Equals) {
			p.nextToken()
			p.nextToken()
			init = p.parseExpression(precAssign)
		}
		sp := ast.Span{Start: p.arena.SpanOf(name).Start, End: uint32(p.curToken.End)}
		params = append(params, p.arena.AddParameter(sp, ast.ParameterData{Name: name, Type: typ, Initializer: init, Optional: optional, Rest: rest}))
		if p.peekTokenIs(token.Comma) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.CloseParen) {
			return nil, false
		}
		return params, true
	}
}

func (p *Parser) parseAsyncPrefixed() ast.NodeIndex {
	if p.peekTokenIs(token.FunctionKeyword) {
		p.nextToken()
		return p.parseFunctionExpr(true)
	}
	snap := p.save()
	p.nextToken()
	if params, ok := p.tryParseArrowParameterList(); ok && (p.peekTokenIs(token.EqualsGreaterThan) || p.peekTokenIs(token.Colon)) {
		return p.finishArrowFunction(params, true)
	}
	p.restore(snap)
	return p.parseIdentifierExpr()
}
