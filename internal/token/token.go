package token

import (
	"formulang/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string, or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	c := t.Kind.Category()
	return c == CatOperator || c == CatPunct
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.Category() == CatKeyword }

// Describe renders the token for diagnostics: `'RSI'`, `end of input`.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Invalid:
		return "invalid token"
	}
	return "'" + t.Text + "'"
}
