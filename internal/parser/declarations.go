package parser

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

func (p *Parser) parseTypeAliasDeclaration(mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken // 'type'
	if !p.expectPeek(token.Identifier) {
		return ast.NONE
	}
	name := p.parseIdentifierExpr()
	var typeParams []ast.NodeIndex
	if p.peekTokenIs(token.LessThan) {
		p.nextToken()
		typeParams = p.parseTypeParameterList()
	}
	if !p.expectPeek(token.Equals) {
		return ast.NONE
	}
	p.nextToken()
	typ := p.parseType()
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddTypeAlias(sp, ast.TypeAliasData{Name: name, TypeParams: typeParams, Type: typ, Modifiers: mods})
}

func (p *Parser) parseInterfaceDeclaration(mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken // 'interface'
	if !p.expectPeek(token.Identifier) {
		return ast.NONE
	}
	name := p.parseIdentifierExpr()
	var typeParams []ast.NodeIndex
	if p.peekTokenIs(token.LessThan) {
		p.nextToken()
		typeParams = p.parseTypeParameterList()
	}
	var extends []ast.NodeIndex
	if p.peekTokenIs(token.ExtendsKeyword) {
		p.nextToken()
		p.nextToken()
		extends = append(extends, p.parseTypeReferenceOrIdentifierType())
		for p.peekTokenIs(token.Comma) {
			p.nextToken()
			p.nextToken()
			extends = append(extends, p.parseTypeReferenceOrIdentifierType())
		}
	}
	if !p.expectPeek(token.OpenBrace) {
		return ast.NONE
	}
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
	return p.arena.AddInterface(sp, ast.InterfaceData{
		Name: name, TypeParams: typeParams, Extends: extends, Members: members, Modifiers: mods,
	})
}

func (p *Parser) parseEnumDeclaration(mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken // 'enum'
	if p.peekTokenIs(token.ConstKeyword) {
		p.nextToken()
		mods |= ast.ModConst
	}
	if !p.expectPeek(token.Identifier) {
		return ast.NONE
	}
	name := p.parseIdentifierExpr()
	if !p.expectPeek(token.OpenBrace) {
		return ast.NONE
	}
	var members []ast.NodeIndex
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		members = append(members, p.parseEnumMember())
		if p.peekTokenIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddEnum(sp, ast.EnumData{Name: name, Members: members, Modifiers: mods})
}

func (p *Parser) parseEnumMember() ast.NodeIndex {
	startTok := p.curToken
	var name ast.NodeIndex
	if p.curTokenIs(token.StringLiteral) {
		name = p.parseStringLiteral()
	} else {
		name = p.parseIdentifierExpr()
	}
	init := ast.NONE
	if p.peekTokenIs(token.Equals) {
		p.nextToken()
		p.nextToken()
		init = p.parseExpression(precAssign)
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddEnumMember(sp, ast.EnumMemberData{Name: name, Initializer: init})
}

// parseImportDeclaration covers the side-effect (`import "mod"`), default
// (`import D from "mod"`), namespace (`import * as N from "mod"`), and
// named (`import { a, b as c } from "mod"`) import forms. Module
// resolution itself is out of scope for this core; the declaration is
// retained as a bare KindImportDeclaration statement that records only its
// span, not the imported names.
func (p *Parser) parseImportDeclaration() ast.NodeIndex {
	startTok := p.curToken // 'import'
	p.nextToken()
	if p.curTokenIs(token.StringLiteral) {
		p.parseStringLiteral()
		p.consumeSemicolon()
		sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
		return p.arena.AddSimple(ast.KindImportDeclaration, sp)
	}
	if p.curTokenIs(token.TypeKeyword) && !p.isFromKeyword(p.peekToken) && !p.peekTokenIs(token.Comma) {
		p.nextToken() // `import type ...`; type-only imports are erased at check time
	}
	if p.curTokenIs(token.Asterisk) {
		p.nextToken() // 'as'
		p.nextToken()
		p.parseIdentifierExpr()
	} else if p.curTokenIs(token.OpenBrace) {
		p.parseNamedImportOrExportList()
	} else if p.curTokenIs(token.Identifier) {
		p.parseIdentifierExpr()
		if p.peekTokenIs(token.Comma) {
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(token.Asterisk) {
				p.nextToken()
				p.nextToken()
				p.parseIdentifierExpr()
			} else if p.curTokenIs(token.OpenBrace) {
				p.parseNamedImportOrExportList()
			}
		}
	}
	if p.isFromKeyword(p.peekToken) {
		p.nextToken()
		p.nextToken()
		p.parseStringLiteral()
	}
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddSimple(ast.KindImportDeclaration, sp)
}

// isFromKeyword reports whether tok is the contextual `from` keyword,
// which this token vocabulary scans as a plain identifier since it is
// never reserved outside an import/export clause.
func (p *Parser) isFromKeyword(tok token.Token) bool {
	return tok.Type == token.Identifier && tok.Lexeme == "from"
}

// parseNamedImportOrExportList parses `{ a, b as c, ... }`, given curToken
// on the opening `{`. Bindings are discarded beyond validating the syntax;
// no structured import table is built, and the checker resolves a name
// from another file by looking it up in that file's export table.
func (p *Parser) parseNamedImportOrExportList() {
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		if p.curTokenIs(token.CloseBrace) {
			break
		}
		p.parseIdentifierExpr()
		if p.peekTokenIs(token.AsKeyword) {
			p.nextToken()
			p.nextToken()
			p.parseIdentifierExpr()
		}
		if p.peekTokenIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expectPeek(token.CloseBrace)
}

func (p *Parser) parseClassDeclaration(mods ast.Modifiers) ast.NodeIndex {
	startTok := p.curToken // 'class'
	if p.peekTokenIs(token.AbstractKeyword) {
		p.nextToken()
		mods |= ast.ModAbstract
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
	extends := ast.NONE
	if p.peekTokenIs(token.ExtendsKeyword) {
		p.nextToken()
		p.nextToken()
		extends = p.parseTypeReferenceOrIdentifierType()
	}
	var implements []ast.NodeIndex
	if p.peekTokenIs(token.ImplementsKeyword) {
		p.nextToken()
		p.nextToken()
		implements = append(implements, p.parseTypeReferenceOrIdentifierType())
		for p.peekTokenIs(token.Comma) {
			p.nextToken()
			p.nextToken()
			implements = append(implements, p.parseTypeReferenceOrIdentifierType())
		}
	}
	if !p.expectPeek(token.OpenBrace) {
		return ast.NONE
	}
	var members []ast.NodeIndex
	for !p.peekTokenIs(token.CloseBrace) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		if p.curTokenIs(token.Semicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expectPeek(token.CloseBrace)
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddClass(sp, ast.ClassData{
		Name: name, TypeParams: typeParams, Extends: extends, Implements: implements,
		Members: members, Modifiers: mods,
	})
}

// parseClassMember parses one field, method, accessor, or constructor,
// given curToken on its first token (after any leading modifier keywords
// have already been folded in by the loop below).
func (p *Parser) parseClassMember() ast.NodeIndex {
	startTok := p.curToken
	var mods ast.Modifiers
	for {
		var bit ast.Modifiers
		switch p.curToken.Type {
		case token.PublicKeyword:
			bit = ast.ModPublic
		case token.PrivateKeyword:
			bit = ast.ModPrivate
		case token.ProtectedKeyword:
			bit = ast.ModProtected
		case token.StaticKeyword:
			bit = ast.ModStatic
		case token.ReadonlyKeyword:
			bit = ast.ModReadonly
		case token.AbstractKeyword:
			bit = ast.ModAbstract
		case token.OverrideKeyword:
			bit = ast.ModOverride
		default:
			goto modsDone
		}
		// A modifier keyword immediately followed by a member-start token
		// (`:`, `(`, `=`, `?`, `;`, `<`) is actually being used as the
		// member's own name, not as a modifier — leave it unconsumed.
		if p.peekTokenIsMemberStart() {
			break
		}
		mods |= bit
		p.nextToken()
	}
modsDone:
	isAsync := false
	if p.curTokenIs(token.AsyncKeyword) && p.peekTokenIsMemberName() {
		isAsync = true
		p.nextToken()
	}
	isGenerator := false
	if p.curTokenIs(token.Asterisk) {
		isGenerator = true
		p.nextToken()
	}
	kind := ast.KindMethodDeclaration
	if p.curTokenIs(token.GetKeyword) && p.peekTokenIsMemberName() {
		kind = ast.KindGetAccessor
		p.nextToken()
	} else if p.curTokenIs(token.SetKeyword) && p.peekTokenIsMemberName() {
		kind = ast.KindSetAccessor
		p.nextToken()
	}

	if p.curTokenIs(token.ConstructorKeyword) {
		return p.finishClassMethod(startTok, ast.KindConstructorDeclaration, ast.NONE, mods, false, false)
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

	if p.peekTokenIs(token.OpenParen) || p.peekTokenIs(token.LessThan) {
		return p.finishClassMethodNamed(startTok, kind, name, mods, isAsync, isGenerator)
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
	p.consumeSemicolon()
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddProperty(ast.KindPropertyDeclaration, sp, ast.PropertyData{
		Name: name, Type: typ, Initializer: init, Optional: optional, Modifiers: mods, Computed: computed,
	})
}

func (p *Parser) finishClassMethodNamed(startTok token.Token, kind ast.Kind, name ast.NodeIndex, mods ast.Modifiers, isAsync, isGenerator bool) ast.NodeIndex {
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

func (p *Parser) finishClassMethod(startTok token.Token, kind ast.Kind, name ast.NodeIndex, mods ast.Modifiers, isAsync, isGenerator bool) ast.NodeIndex {
	if !p.expectPeek(token.OpenParen) {
		return ast.NONE
	}
	params := p.parseParameterList()
	body := ast.NONE
	if p.peekTokenIs(token.OpenBrace) {
		p.nextToken()
		body = p.parseBlock()
	} else {
		p.consumeSemicolon()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddFunction(kind, sp, ast.FunctionData{
		Name: name, Parameters: params, Body: body, Modifiers: mods, IsGenerator: isGenerator, IsAsync: isAsync,
	})
}

// peekTokenIsMemberStart reports whether peekToken is one that can follow
// a class member's name (`(`, `:`, `=`, `?`, `;` or `<`), used to stop consuming
// modifier keywords once one of them is actually being used as the
// member's own name (e.g. a field literally named `static`).
func (p *Parser) peekTokenIsMemberStart() bool {
	switch p.peekToken.Type {
	case token.OpenParen, token.Colon, token.Equals, token.Question, token.Semicolon, token.LessThan:
		return true
	default:
		return false
	}
}

func (p *Parser) peekTokenIsMemberName() bool {
	switch p.peekToken.Type {
	case token.Identifier, token.OpenBracket, token.StringLiteral, token.NumericLiteral,
		token.PrivateIdentifier, token.Asterisk:
		return true
	default:
		return false
	}
}
