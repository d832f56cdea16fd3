package parser

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// parseStatement dispatches on curToken's leading keyword/punctuation to
// the matching statement production, falling back to an expression
// statement (the grammar's catch-all) when nothing else matches.
func (p *Parser) parseStatement() ast.NodeIndex {
	return p.parseStatementWithModifiers(0)
}

// parseStatementWithModifiers is parseStatement's real body. mods
// accumulates `export`/`declare` prefixes seen so far so they can be
// folded into whichever declaration they turn out to prefix, since this
// grammar represents them as modifier bits on the declaration node rather
// than as separate wrapper nodes.
func (p *Parser) parseStatementWithModifiers(mods ast.Modifiers) ast.NodeIndex {
	switch p.curToken.Type {
	case token.ExportKeyword:
		mods |= ast.ModExport
		if p.peekTokenIs(token.DefaultKeyword) {
			p.nextToken()
			mods |= ast.ModDefault
		}
		p.nextToken()
		return p.parseStatementWithModifiers(mods)
	case token.DeclareKeyword:
		mods |= ast.ModDeclare
		p.nextToken()
		return p.parseStatementWithModifiers(mods)
	case token.OpenBrace:
		return p.parseBlock()
	case token.ConstKeyword:
		if p.peekTokenIs(token.EnumKeyword) {
			p.nextToken()
			return p.parseEnumDeclaration(mods | ast.ModConst)
		}
		return p.parseVariableStatement(mods)
	case token.VarKeyword, token.LetKeyword:
		return p.parseVariableStatement(mods)
	case token.IfKeyword:
		return p.parseIfStatement()
	case token.ForKeyword:
		return p.parseForStatement()
	case token.WhileKeyword:
		return p.parseWhileStatement()
	case token.DoKeyword:
		return p.parseDoWhileStatement()
	case token.ReturnKeyword:
		return p.parseReturnStatement()
	case token.ThrowKeyword:
		return p.parseThrowStatement()
	case token.BreakKeyword:
		return p.parseBreakContinue(ast.KindBreakStatement)
	case token.ContinueKeyword:
		return p.parseBreakContinue(ast.KindContinueStatement)
	case token.TryKeyword:
		return p.parseTryStatement()
	case token.SwitchKeyword:
		return p.parseSwitchStatement()
	case token.FunctionKeyword:
		return p.parseFunctionDeclaration(false, mods)
	case token.AsyncKeyword:
		if p.peekTokenIs(token.FunctionKeyword) {
			p.nextToken()
			return p.parseFunctionDeclaration(true, mods)
		}
		return p.parseExpressionStatement()
	case token.ClassKeyword:
		return p.parseClassDeclaration(mods)
	case token.InterfaceKeyword:
		return p.parseInterfaceDeclaration(mods)
	case token.TypeKeyword:
		return p.parseTypeAliasDeclaration(mods)
	case token.EnumKeyword:
		return p.parseEnumDeclaration(mods)
	case token.ImportKeyword:
		return p.parseImportDeclaration()
	case token.Semicolon:
		sp := ast.Span{Start: uint32(p.curToken.Start), End: uint32(p.curToken.End)}
		return p.arena.AddSimple(ast.KindEmptyStatement, sp)
	case token.DebuggerKeyword:
		sp := ast.Span{Start: uint32(p.curToken.Start), End: uint32(p.curToken.End)}
		p.consumeSemicolon()
		return p.arena.AddSimple(ast.KindDebuggerStatement, sp)
	case token.Identifier:
		if p.peekTokenIs(token.Colon) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLabeledStatement() ast.NodeIndex {
	startTok := p.curToken
	label := p.parseIdentifierExpr()
	p.nextToken() // ':'
	p.nextToken()
	stmt := p.parseStatement()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddLabeledStatement(sp, ast.LabeledStatementData{Label: label, Statement: stmt})
}

// consumeSemicolon implements the ASI-lite rule this grammar applies: a
// statement terminator is either an explicit `;`, the start of a `}` that
// closes the enclosing block, EOF, or a line break before the next token.
func (p *Parser) consumeSemicolon() {
	if p.peekTokenIs(token.Semicolon) {
		p.nextToken()
		return
	}
	if p.peekTokenIs(token.CloseBrace) || p.peekTokenIs(token.EOF) || p.peekToken.PrecedingLineBreak {
		return
	}
	p.errors.Add(diagnostics.NewSyntaxError(diagnostics.ErrExpectedToken, p.peekToken, "';' expected"))
}

func (p *Parser) parseBlock() ast.NodeIndex {
	startTok := p.curToken // '{'
	var stmts []ast.NodeIndex
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt := p.parseStatement()
		if stmt != ast.NONE {
			stmts = append(stmts, stmt)
		}
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddBlock(sp, ast.BlockData{Statements: stmts})
}

func (p *Parser) parseExpressionStatement() ast.NodeIndex {
	startTok := p.curToken
	expr := p.parseExpression(precLowest)
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddExprStmt(sp, ast.ExprStmtData{Expression: expr})
}

func (p *Parser) parseVariableStatement(mods ast.Modifiers) ast.NodeIndex {
	list := p.parseVariableDeclarationList(mods)
	p.consumeSemicolon()
	return list
}

func (p *Parser) parseVariableDeclarationList(mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken
	kind := ast.VarKindVar
	switch p.curToken.Type {
	case token.LetKeyword:
		kind = ast.VarKindLet
	case token.ConstKeyword:
		kind = ast.VarKindConst
	}
	var decls []ast.NodeIndex
	p.nextToken()
	decls = append(decls, p.parseVariableDeclaration())
	for p.peekTokenIs(token.Comma) {
		p.nextToken()
		p.nextToken()
		decls = append(decls, p.parseVariableDeclaration())
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddVarDeclList(sp, ast.VarDeclListData{Declarations: decls, Kind: kind, Modifiers: mods})
}

func (p *Parser) parseVariableDeclaration() ast.NodeIndex {
	startTok := p.curToken
	name := p.parseIdentifierExpr()
	definite := false
	if p.peekTokenIs(token.Exclamation) {
		p.nextToken()
		definite = true
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
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddVarDecl(sp, ast.VarDeclData{Name: name, Type: typ, Initializer: init, Definite: definite})
}

func (p *Parser) parseIfStatement() ast.NodeIndex {
	startTok := p.curToken
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	p.nextToken()
	cond := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseParen) {
		return ast.NONE
	}
	p.nextToken()
	then := p.parseStatement()
	elseStmt := ast.NONE
	if p.peekTokenIs(token.ElseKeyword) {
		p.nextToken()
		p.nextToken()
		elseStmt = p.parseStatement()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddIf(sp, ast.IfData{Condition: cond, Then: then, Else: elseStmt})
}

// parseForStatement covers all four for-loop shapes (`for(;;)`, `for-in`,
// `for-of`, and `for await (... of ...)`), disambiguated by scanning the
// loop header for an `in`/`of` keyword between the initializer and the
// closing paren.
func (p *Parser) parseForStatement() ast.NodeIndex {
	startTok := p.curToken
	isAwait := false
	if p.peekTokenIs(token.AwaitKeyword) {
		p.nextToken()
		isAwait = true
	}
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}

	if p.peekTokenIs(token.Semicolon) {
		p.nextToken()
		return p.finishClassicFor(startTok, ast.NONE)
	}

	p.nextToken()
	if p.curTokenIs(token.VarKeyword) || p.curTokenIs(token.LetKeyword) || p.curTokenIs(token.ConstKeyword) {
		declStart := p.curToken
		kind := ast.VarKindVar
		switch declStart.Type {
		case token.LetKeyword:
			kind = ast.VarKindLet
		case token.ConstKeyword:
			kind = ast.VarKindConst
		}
		p.nextToken()
		name := p.parseIdentifierExpr()
		if p.peekTokenIs(token.InKeyword) || p.peekTokenIs(token.OfKeyword) {
			isOf := p.peekTokenIs(token.OfKeyword)
			p.nextToken()
			p.nextToken()
			expr := p.parseExpression(precAssign)
			if !p.expectPeek(token.CloseParen) {
				return ast.NONE
			}
			p.nextToken()
			body := p.parseStatement()
			declSp := p.arena.SpanOf(name)
			declList := p.arena.AddVarDeclList(declSp, ast.VarDeclListData{
				Declarations: []ast.NodeIndex{p.arena.AddVarDecl(declSp, ast.VarDeclData{Name: name})},
				Kind:         kind,
			})
			kind2 := ast.KindForOfStatement
			if !isOf {
				kind2 = ast.KindForInStatement
			}
			sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
			return p.arena.AddLoop(kind2, sp, ast.LoopData{Declared: declList, Expr: expr, Body: body, IsAwait: isAwait})
		}
		// Classic for: re-parse the rest of this declarator and any siblings.
		definite := false
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
		declSp := ast.Span{Start: uint32(declStart.Start), End: uint32(p.curToken.End)}
		decls := []ast.NodeIndex{p.arena.AddVarDecl(declSp, ast.VarDeclData{Name: name, Type: typ, Initializer: init, Definite: definite})}
		for p.peekTokenIs(token.Comma) {
			p.nextToken()
			p.nextToken()
			decls = append(decls, p.parseVariableDeclaration())
		}
		initNode := p.arena.AddVarDeclList(declSp, ast.VarDeclListData{Declarations: decls, Kind: kind})
		if !p.expectPeek(token.Semicolon) {
			return ast.NONE
		}
		return p.finishClassicFor(startTok, initNode)
	}

	initExpr := p.parseExpression(precLowest)
	if p.peekTokenIs(token.InKeyword) || p.peekTokenIs(token.OfKeyword) {
		isOf := p.peekTokenIs(token.OfKeyword)
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(precAssign)
		if !p.expectPeek(token.CloseParen) {
			return ast.NONE
		}
		p.nextToken()
		body := p.parseStatement()
		kind := ast.KindForOfStatement
		if !isOf {
			kind = ast.KindForInStatement
		}
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		stmtSp := p.arena.SpanOf(initExpr)
		exprStmt := p.arena.AddExprStmt(stmtSp, ast.ExprStmtData{Expression: initExpr})
		return p.arena.AddLoop(kind, sp, ast.LoopData{Declared: exprStmt, Expr: expr, Body: body, IsAwait: isAwait})
	}
	if !p.expectPeek(token.Semicolon) {
		return ast.NONE
	}
	initSp := p.arena.SpanOf(initExpr)
	initStmt := p.arena.AddExprStmt(initSp, ast.ExprStmtData{Expression: initExpr})
	return p.finishClassicFor(startTok, initStmt)
}

func (p *Parser) finishClassicFor(startTok token.Token, init ast.NodeIndex) ast.NodeIndex {
	cond := ast.NONE
	if !p.peekTokenIs(token.Semicolon) {
		p.nextToken()
		cond = p.parseExpression(precLowest)
	}
	if !p.expectPeek(token.Semicolon) {
		return ast.NONE
	}
	update := ast.NONE
	if !p.peekTokenIs(token.CloseParen) {
		p.nextToken()
		update = p.parseExpression(precLowest)
	}
	if !p.expectPeek(token.CloseParen) {
		return ast.NONE
	}
	p.nextToken()
	body := p.parseStatement()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddLoop(ast.KindForStatement, sp, ast.LoopData{Init: init, Condition: cond, Update: update, Body: body})
}

func (p *Parser) parseWhileStatement() ast.NodeIndex {
	startTok := p.curToken
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	p.nextToken()
	cond := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseParen) {
		return ast.NONE
	}
	p.nextToken()
	body := p.parseStatement()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddLoop(ast.KindWhileStatement, sp, ast.LoopData{Condition: cond, Body: body})
}

func (p *Parser) parseDoWhileStatement() ast.NodeIndex {
	startTok := p.curToken
	p.nextToken()
	body := p.parseStatement()
	if !p.expectPeek(token.WhileKeyword) {
		return ast.NONE
	}
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	p.nextToken()
	cond := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseParen) {
		return ast.NONE
	}
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddLoop(ast.KindDoWhileStatement, sp, ast.LoopData{Condition: cond, Body: body})
}

func (p *Parser) parseReturnStatement() ast.NodeIndex {
	startTok := p.curToken
	arg := ast.NONE
	if !p.peekTokenIs(token.Semicolon) && !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) && !p.peekToken.PrecedingLineBreak {
		p.nextToken()
		arg = p.parseExpression(precLowest)
	}
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddReturn(ast.KindReturnStatement, sp, ast.ReturnData{Argument: arg})
}

func (p *Parser) parseThrowStatement() ast.NodeIndex {
	startTok := p.curToken
	if p.peekToken.PrecedingLineBreak {
		p.errors.Add(diagnostics.NewSyntaxError(diagnostics.ErrStatementExpected, p.peekToken,
			"line break not permitted here"))
	}
	p.nextToken()
	arg := p.parseExpression(precLowest)
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddReturn(ast.KindThrowStatement, sp, ast.ReturnData{Argument: arg})
}

func (p *Parser) parseBreakContinue(kind ast.Kind) ast.NodeIndex {
	startTok := p.curToken
	label := ast.NONE
	if !p.peekToken.PrecedingLineBreak && p.peekTokenIs(token.Identifier) {
		p.nextToken()
		label = p.parseIdentifierExpr()
	}
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddBreakContinue(kind, sp, ast.BreakContinueData{Label: label})
}

func (p *Parser) parseTryStatement() ast.NodeIndex {
	startTok := p.curToken
	if !p.expectPeek(token.OpenBrace) {
		return ast.NONE
	}
	tryBlock := p.parseBlock()
	var catchClause ast.NodeIndex = ast.NONE
	var finallyBlock ast.NodeIndex = ast.NONE
	if p.peekTokenIs(token.CatchKeyword) {
		p.nextToken()
		catchStart := p.curToken
		param := ast.NONE
		if p.peekTokenIs(token.OpenParen) {
			p.nextToken()
			p.nextToken()
			param = p.parseIdentifierExpr()
			if p.peekTokenIs(token.Colon) {
				p.nextToken()
				p.nextToken()
				p.parseType() // catch clause annotations are checked, not bound, in this core
			}
			p.expectPeek(token.CloseParen)
		}
		if !p.expectPeek(token.OpenBrace) {
			return ast.NONE
		}
		body := p.parseBlock()
		sp := ast.Span{Start: uint32(catchStart.Start), End: uint32(p.curToken.End)}
		catchClause = p.arena.AddCatchClause(sp, ast.CatchClauseData{Param: param, Body: body})
	}
	if p.peekTokenIs(token.FinallyKeyword) {
		p.nextToken()
		if !p.expectPeek(token.OpenBrace) {
			return ast.NONE
		}
		finallyBlock = p.parseBlock()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddTry(sp, ast.TryData{Block: tryBlock, Catch: catchClause, Finally: finallyBlock})
}

func (p *Parser) parseSwitchStatement() ast.NodeIndex {
	startTok := p.curToken
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	p.nextToken()
	disc := p.parseExpression(precLowest)
	if !p.expectPeek(token.CloseParen) {
		return ast.NONE
	}
	if !p.expectPeek(token.OpenBrace) {
		return ast.NONE
	}
	var clauses []ast.NodeIndex
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		clauses = append(clauses, p.parseCaseOrDefaultClause())
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddSwitch(sp, ast.SwitchData{Discriminant: disc, Clauses: clauses})
}

func (p *Parser) parseCaseOrDefaultClause() ast.NodeIndex {
	startTok := p.curToken
	isDefault := p.curTokenIs(token.DefaultKeyword)
	test := ast.NONE
	if !isDefault {
		p.nextToken()
		test = p.parseExpression(precLowest)
	}
	if !p.expectPeek(token.Colon) {
		return ast.NONE
	}
	var stmts []ast.NodeIndex
	for !p.peekTokenIs(token.CaseKeyword) && !p.peekTokenIs(token.DefaultKeyword) &&
		!p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmts = append(stmts, p.parseStatement())
	}
	kind := ast.KindCaseClause
	if isDefault {
		kind = ast.KindDefaultClause
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddCaseClause(kind, sp, ast.CaseClauseData{Test: test, Statements: stmts})
}

func (p *Parser) parseFunctionExpr(isAsync bool) ast.NodeIndex {
	return p.parseFunctionCommon(ast.KindFunctionExpression, isAsync, 0)
}

func (p *Parser) parseFunctionDeclaration(isAsync bool, mods ast.Modifiers) ast.NodeIndex {
	if isAsync {
		mods |= ast.ModAsync
	}
	return p.parseFunctionCommon(ast.KindFunctionDeclaration, isAsync, mods)
}

// parseFunctionCommon parses the shared shape of function declarations and
// function expressions: `function` [`*`] [name] typeParams? (params) [:
// returnType] (block | `;` for an overload signature).
func (p *Parser) parseFunctionCommon(kind ast.Kind, isAsync bool, mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken // 'function'
	isGenerator := false
	if p.peekTokenIs(token.Asterisk) {
		p.nextToken()
		isGenerator = true
	}
	name := ast.NONE
	if p.peekTokenIs(token.Identifier) {
		p.nextToken()
		name = p.parseIdentifierExpr()
	}
	var typeParams []ast.NodeIndex
	if p.peekTokenIs(token.LessThan) {
		p.nextToken()
		typeParams = p.parseTypeParameterList()
	}
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	params := p.parseParameterList()
	returnType := ast.NONE
	if p.peekTokenIs(token.Colon) {
		p.nextToken()
		p.nextToken()
		returnType = p.parseType()
	}
	body := ast.NONE
	if p.peekTokenIs(token.OpenBrace) {
		p.nextToken()
		body = p.parseBlock()
	} else {
		p.consumeSemicolon()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddFunction(kind, sp, ast.FunctionData{
		Name: name, TypeParams: typeParams, Parameters: params, ReturnType: returnType,
		Body: body, Modifiers: mods, IsGenerator: isGenerator, IsAsync: isAsync,
	})
}

// parseParameterList parses `(p1, p2, ...)` given curToken on `(`, used by
// function/method declarations (as opposed to tryParseArrowParameterList's
// speculative, error-suppressing variant).
func (p *Parser) parseParameterList() []ast.NodeIndex {
	var params []ast.NodeIndex
	if p.peekTokenIs(token.CloseParen) {
		p.nextToken()
		return params
	}
	for {
		p.nextToken()
		params = append(params, p.parseParameter())
		if p.peekTokenIs(token.Comma) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.CloseParen)
	return params
}

func (p *Parser) parseParameter() ast.NodeIndex {
	startTok := p.curToken
	var mods ast.Modifiers
	for {
		switch p.curToken.Type {
		case token.PublicKeyword:
			mods |= ast.ModPublic
		case token.PrivateKeyword:
			mods |= ast.ModPrivate
		case token.ProtectedKeyword:
			mods |= ast.ModProtected
		case token.ReadonlyKeyword:
			mods |= ast.ModReadonly
		default:
			goto modsDone
		}
		p.nextToken()
	}
modsDone:
	rest := false
	if p.curTokenIs(token.DotDotDot) {
		rest = true
		p.nextToken()
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
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddParameter(sp, ast.ParameterData{
		Name: name, Type: typ, Initializer: init, Optional: optional, Rest: rest, Modifiers: mods,
	})
}
