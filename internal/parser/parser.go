// Package parser implements a hand-written recursive-descent (Pratt, for
// expressions) parser that turns a token stream into an internal/ast arena.
// Like the scanner, it favors explicit state over generated tables: a
// context-flag bitset tracks grammar position (`in_yield`, `in_await`,
// `in_disallow_in`, `in_decorator`, `in_type_context`) and is saved and
// restored around speculative lookahead, the same way the teacher's parser
// snapshots its token stream before trying an alternative production.
package parser

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/scanner"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

// MaxRecursionDepth bounds expression/type nesting so a pathological or
// adversarial input fails with a diagnostic instead of overflowing the Go
// stack.
const MaxRecursionDepth = 200

// ContextFlags is a bitset describing the grammar position the parser is
// currently in. Productions that change meaning based on context (yield
// and await expressions, the `in` operator inside a for-init, decorators,
// and whether an identifier sequence should be read as a type) push a
// flag, recurse, and pop it — mirroring how the teacher's parser threads
// per-production boolean flags (e.g. disallowTrailingLambda) through
// recursive calls rather than global mutable state.
type ContextFlags uint8

const (
	CtxYield ContextFlags = 1 << iota
	CtxAwait
	CtxDisallowIn
	CtxDecorator
	CtxTypeContext
)

// Parser holds the full mutable state of one parse: the scanner cursor
// (addressed indirectly through curToken/peekToken, since look-ahead is
// one token at a time plus an explicit Snapshot/Restore for deeper
// backtracking), the arena being built, and the diagnostic collector.
type Parser struct {
	scanner *scanner.Scanner
	arena   *ast.Arena
	errors  *diagnostics.Collector

	curToken  token.Token
	peekToken token.Token

	ctx   ContextFlags
	depth int

	prefixParseFns map[token.Type]func() ast.NodeIndex
	infixParseFns  map[token.Type]infixParseFn

	inRecursionRecovery bool
}

type infixParseFn func(left ast.NodeIndex) ast.NodeIndex

// New constructs a Parser over src, tagging diagnostics with fileName.
func New(fileName, src string) *Parser {
	p := &Parser{
		scanner: scanner.New(src),
		arena:   ast.New(fileName, src),
		errors:  diagnostics.NewCollector(fileName),
	}
	p.registerExpressionParseFns()
	// Prime curToken/peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the diagnostics collected while parsing.
func (p *Parser) Errors() []*diagnostics.DiagnosticError { return p.errors.Diagnostics() }

// Arena returns the arena being populated. Valid to call at any point, but
// only complete after ParseSourceFile returns.
func (p *Parser) Arena() *ast.Arena { return p.arena }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	regexOK := p.regexAllowedAfter(p.curToken.Type)
	p.scanner.SetRegexAllowed(regexOK)
	p.peekToken = p.scanner.NextToken()
}

// regexAllowedAfter reports whether a '/' immediately after typ should be
// read as the start of a regular expression literal. This is the
// classic TypeScript/JS ambiguity: division follows a value-producing
// token (identifier, literal, `)`, `]`), a regex literal can start
// anywhere else (after an operator, `(`, `,`, keywords like `return`).
func (p *Parser) regexAllowedAfter(typ token.Type) bool {
	switch typ {
	case token.Identifier, token.NumericLiteral, token.StringLiteral, token.BigIntLiteral,
		token.CloseParen, token.CloseBracket, token.CloseBrace, token.ThisKeyword, token.PlusPlus, token.MinusMinus:
		return false
	default:
		return true
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, recording a syntax
// diagnostic and leaving the cursor unchanged otherwise.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errors.Add(diagnostics.NewSyntaxError(diagnostics.ErrExpectedToken, p.peekToken,
		"'%s' expected", t))
	return false
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errors.Add(diagnostics.NewSyntaxError(diagnostics.ErrExpressionExpected, p.curToken,
		"expression expected, found '%s'", t))
}

// span builds a Span covering from start's byte offset to the current
// (already-consumed) token's end, used when a node's last child has
// already advanced the cursor past its own span.
func (p *Parser) spanFrom(start token.Token) ast.Span {
	end := p.curToken
	if end.End < start.Start {
		end = start
	}
	return ast.Span{Start: uint32(start.Start), End: uint32(end.End)}
}

// snapshot captures enough state to retry a speculative parse (e.g.
// disambiguating an arrow function's parenthesized parameter list from a
// parenthesized expression) and roll back on failure.
type snapshot struct {
	scan      scanner.Snapshot
	cur, peek token.Token
	ctx       ContextFlags
	errCount  int
}

func (p *Parser) save() snapshot {
	return snapshot{
		scan: p.scanner.Save(),
		cur:  p.curToken, peek: p.peekToken,
		ctx:      p.ctx,
		errCount: len(p.errors.Diagnostics()),
	}
}

func (p *Parser) restore(s snapshot) {
	p.scanner.Restore(s.scan)
	p.curToken, p.peekToken = s.cur, s.peek
	p.ctx = s.ctx
	// Diagnostics raised during the abandoned attempt (e.g. the "'>'
	// expected" a failed type-argument list records) are dropped.
	// Collector has no removal API, so the collector is rebuilt from the
	// diagnostics recorded before the snapshot.
	if kept := p.errors.Diagnostics(); len(kept) > s.errCount {
		fresh := diagnostics.NewCollector(p.arena.FileName)
		fresh.AddAll(kept[:s.errCount])
		p.errors = fresh
	}
}

func (p *Parser) withCtx(flag ContextFlags, enabled bool, fn func()) {
	saved := p.ctx
	if enabled {
		p.ctx |= flag
	} else {
		p.ctx &^= flag
	}
	fn()
	p.ctx = saved
}

func (p *Parser) has(flag ContextFlags) bool { return p.ctx&flag != 0 }

// ParseSourceFile parses the whole token stream and returns the root node
// index of the resulting KindSourceFile node.
func (p *Parser) ParseSourceFile() ast.NodeIndex {
	startTok := p.curToken
	var stmts []ast.NodeIndex
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != ast.NONE {
			stmts = append(stmts, stmt)
		}
		if p.curTokenIs(token.EOF) {
			break
		}
		p.nextToken()
	}
	sp := ast.Span{Start: uint32(startTok.Start), End: uint32(p.curToken.End)}
	return p.arena.AddSourceFile(sp, ast.SourceFileData{
		FileName:       p.arena.FileName,
		Statements:     stmts,
		EndOfFileToken: p.curToken,
	})
}

// skipToStatementBoundary recovers from a malformed statement by consuming
// tokens until a likely statement boundary, preventing a single syntax
// error from cascading into dozens of follow-on diagnostics.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.Semicolon) && !p.curTokenIs(token.CloseBrace) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}
