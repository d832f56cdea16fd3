package scanner_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/scanner"
	"github.com/mohsen1/tsz-sub030/internal/token"
)

func scanAll(t *testing.T, input string) []token.Token {
	t.Helper()
	s := scanner.New(input)
	var out []token.Token
	for {
		tok := s.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func expectTypes(t *testing.T, input string, want ...token.Type) {
	t.Helper()
	toks := scanAll(t, input)
	if len(toks) != len(want)+1 { // +1 for trailing EOF
		t.Fatalf("input %q: got %d tokens, want %d\ntokens: %+v", input, len(toks), len(want)+1, toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("input %q: token %d: got %s, want %s", input, i, toks[i].Type, w)
		}
	}
}

func TestPunctuation(t *testing.T) {
	expectTypes(t, "a.b", token.Identifier, token.Dot, token.Identifier)
	expectTypes(t, "a?.b", token.Identifier, token.QuestionDot, token.Identifier)
	expectTypes(t, "a ?? b", token.Identifier, token.QuestionQuestion, token.Identifier)
	expectTypes(t, "...rest", token.DotDotDot, token.Identifier)
	expectTypes(t, "a => b", token.Identifier, token.EqualsGreaterThan, token.Identifier)
	expectTypes(t, "a === b", token.Identifier, token.EqualsEqualsEquals, token.Identifier)
	expectTypes(t, "a !== b", token.Identifier, token.ExclamationEqualsEquals, token.Identifier)
}

func TestKeywords(t *testing.T) {
	expectTypes(t, "const x = 1", token.ConstKeyword, token.Identifier, token.Equals, token.NumericLiteral)
	expectTypes(t, "type X = string", token.TypeKeyword, token.Identifier, token.Equals, token.Identifier)
	expectTypes(t, "x is string", token.Identifier, token.IsKeyword, token.Identifier)
}

func TestNumericLiterals(t *testing.T) {
	toks := scanAll(t, "42")
	if toks[0].Type != token.NumericLiteral || toks[0].Literal.(float64) != 42 {
		t.Fatalf("got %+v", toks[0])
	}
	toks = scanAll(t, "0x1F")
	if toks[0].Type != token.NumericLiteral || toks[0].Literal.(float64) != 31 {
		t.Fatalf("got %+v", toks[0])
	}
	toks = scanAll(t, "3.14")
	if toks[0].Type != token.NumericLiteral || toks[0].Literal.(float64) != 3.14 {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestBigIntLiteral(t *testing.T) {
	toks := scanAll(t, "10n")
	if toks[0].Type != token.BigIntLiteral {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)
	if toks[0].Type != token.StringLiteral || toks[0].Literal != "hello\nworld" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTemplateLiteralNoSubstitution(t *testing.T) {
	toks := scanAll(t, "`plain`")
	if toks[0].Type != token.NoSubstitutionTemplateLiteral || toks[0].Literal != "plain" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTemplateLiteralHeadAndResume(t *testing.T) {
	s := scanner.New("`a${1}b`")
	head := s.NextToken()
	if head.Type != token.TemplateHead || head.Literal != "a" {
		t.Fatalf("head: got %+v", head)
	}
	num := s.NextToken()
	if num.Type != token.NumericLiteral {
		t.Fatalf("num: got %+v", num)
	}
	tail := s.ResumeTemplate()
	if tail.Type != token.TemplateTail || tail.Literal != "b" {
		t.Fatalf("tail: got %+v", tail)
	}
}

func TestRegexVsDivisionDisambiguation(t *testing.T) {
	s := scanner.New("a / b")
	s.SetRegexAllowed(false)
	ident := s.NextToken()
	if ident.Type != token.Identifier {
		t.Fatalf("got %+v", ident)
	}
	slash := s.NextToken()
	if slash.Type != token.Slash {
		t.Fatalf("expected division, got %+v", slash)
	}

	s2 := scanner.New("/abc/g")
	s2.SetRegexAllowed(true)
	regex := s2.NextToken()
	if regex.Type != token.RegularExpressionLiteral {
		t.Fatalf("expected regex literal, got %+v", regex)
	}
}

func TestGreaterThanSequencesCombineGreedily(t *testing.T) {
	// The scanner combines '>' runs the way tsc's own scanner does; it is
	// the parser's job to split a combined token back apart when closing
	// nested generic argument lists (see internal/parser).
	expectTypes(t, "a>>b", token.Identifier, token.GreaterThanGreaterThan, token.Identifier)
	expectTypes(t, "a>>>b", token.Identifier, token.GreaterThanGreaterThanGreaterThan, token.Identifier)
	expectTypes(t, "a>=b", token.Identifier, token.GreaterThanEquals, token.Identifier)
}

func TestLineBreakTracking(t *testing.T) {
	s := scanner.New("a\nb")
	first := s.NextToken()
	if first.PrecedingLineBreak {
		t.Fatalf("first token should not report a preceding line break")
	}
	second := s.NextToken()
	if !second.PrecedingLineBreak {
		t.Fatalf("second token should report the line break before it")
	}
}

func TestShebangAndBOMAreSkipped(t *testing.T) {
	toks := scanAll(t, "#!/usr/bin/env node\nconst x = 1")
	if toks[0].Type != token.ConstKeyword {
		t.Fatalf("shebang line was not skipped: %+v", toks[0])
	}

	withBOM := "\xEF\xBB\xBFconst x = 1"
	toks2 := scanAll(t, withBOM)
	if toks2[0].Type != token.ConstKeyword {
		t.Fatalf("BOM was not skipped: %+v", toks2[0])
	}
}
