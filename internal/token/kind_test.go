package token_test

import (
	"testing"

	"formulang/internal/source"
	"formulang/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.NumberLit, token.StringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Assign, token.EqEq, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Plus, token.Minus, token.Star, token.Slash, token.Bang,
		token.Semicolon, token.Comma, token.LParen, token.RParen,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
		if k.Text() == "" {
			t.Fatalf("%v must have fixed text", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwAnd, token.NumberLit, token.EOF, token.Invalid}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, k := range []token.Kind{token.KwVar, token.KwAnd, token.KwOr, token.KwTrue, token.KwFalse} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatalf("Ident must not be keyword")
	}
}

func TestCategory(t *testing.T) {
	cases := map[token.Kind]token.Category{
		token.Invalid:   token.CatInvalid,
		token.EOF:       token.CatEOF,
		token.Ident:     token.CatIdent,
		token.KwOr:      token.CatKeyword,
		token.NumberLit: token.CatLiteral,
		token.StringLit: token.CatLiteral,
		token.GtEq:      token.CatOperator,
		token.Bang:      token.CatOperator,
		token.Comma:     token.CatPunct,
		token.RParen:    token.CatPunct,
	}
	for k, want := range cases {
		if got := k.Category(); got != want {
			t.Errorf("%v.Category() = %v, want %v", k, got, want)
		}
	}
}

func TestKindStringIsStable(t *testing.T) {
	if token.LtEq.String() != "LtEq" || token.EOF.String() != "EOF" {
		t.Fatalf("unexpected kind names: %s %s", token.LtEq, token.EOF)
	}
	if token.Kind(250).String() != "Kind(?)" {
		t.Fatalf("out of range kind must not panic")
	}
}

func TestDescribe(t *testing.T) {
	if got := (token.Token{Kind: token.EOF}).Describe(); got != "end of input" {
		t.Errorf("Describe(EOF) = %q", got)
	}
	if got := (token.Token{Kind: token.Ident, Text: "RSI"}).Describe(); got != "'RSI'" {
		t.Errorf("Describe(Ident) = %q", got)
	}
}
