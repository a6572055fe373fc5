package lexer

import (
	"formulang/internal/diag"
	"formulang/internal/token"
)

// "..." с escape \" \\ \n. Перевод строки внутри литерала допустим.
// Неизвестный escape — LEX1005, литерал дочитывается до кавычки и становится Invalid.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	bad := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			kind := token.StringLit
			if bad {
				kind = token.Invalid
			}
			return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Text(start)}
		}
		if b == '\\' {
			esc := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			if !isEscapeByte(lx.cursor.Peek()) {
				lx.bumpRune()
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(esc), "unknown escape sequence")
				bad = true
				continue
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
}

func isEscapeByte(b byte) bool {
	return b == '"' || b == '\\' || b == 'n'
}
