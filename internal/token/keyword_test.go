package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"var":   KwVar,
		"and":   KwAnd,
		"or":    KwOr,
		"true":  KwTrue,
		"false": KwFalse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if want.Text() != lexeme {
			t.Fatalf("%v.Text() = %q, want %q", want, want.Text(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Var", "AND", "Or", "TRUE", // регистр важен
		"RSI", "EMA", "close", // индикаторы и ряды — обычные идентификаторы
		"not", "let", "if",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
