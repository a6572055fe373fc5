package lexer

import (
	"formulang/internal/diag"
	"formulang/internal/token"
)

var singleOps = [...]struct {
	b    byte
	kind token.Kind
}{
	{'+', token.Plus}, {'-', token.Minus}, {'*', token.Star}, {'/', token.Slash},
	{'=', token.Assign}, {'!', token.Bang}, {'<', token.Lt}, {'>', token.Gt},
	{';', token.Semicolon}, {',', token.Comma}, {'(', token.LParen}, {')', token.RParen},
}

// Жадность: сначала 2-символьные (== != <= >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{
			Kind: k,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.Text(start),
		}
	}

	switch {
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	for _, op := range singleOps {
		if lx.cursor.Eat(op.b) {
			return emit(op.kind)
		}
	}
	return lx.scanUnknown()
}

// scanUnknown съедает ровно одну руну (или один битый байт) и отдаёт Invalid.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteChar(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
