package parser

import (
	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/token"
)

// parseExpr — точка входа для выражений; каждый вход — один уровень вложенности.
// prod — продукция, в контексте которой ожидается выражение (для заметки в диагностике).
func (p *Parser) parseExpr(prod production) (ast.Expr, bool) {
	if !p.enter(p.peek().Span) {
		return nil, false
	}
	defer p.leave()
	return p.parseOr(prod)
}

// LogicalOr := LogicalAnd ( "or" LogicalAnd )*
func (p *Parser) parseOr(prod production) (ast.Expr, bool) {
	left, ok := p.parseAnd(prod)
	for ok && p.at(token.KwOr) {
		p.advance()
		var right ast.Expr
		if right, ok = p.parseAnd(prod); ok {
			left = newBinary(ast.BinOr, left, right)
		}
	}
	return left, ok
}

// LogicalAnd := Comparison ( "and" Comparison )*
func (p *Parser) parseAnd(prod production) (ast.Expr, bool) {
	left, ok := p.parseComparison(prod)
	for ok && p.at(token.KwAnd) {
		p.advance()
		var right ast.Expr
		if right, ok = p.parseComparison(prod); ok {
			left = newBinary(ast.BinAnd, left, right)
		}
	}
	return left, ok
}

// Comparison := Additive ( cmpop Additive )?
// Цепочки вида a < b < c отвергаются, а не переосмысляются как (a<b)<c.
func (p *Parser) parseComparison(prod production) (ast.Expr, bool) {
	left, ok := p.parseAdditive(prod)
	if !ok {
		return nil, false
	}
	op, isCmp := comparisonOp(p.peek().Kind)
	if !isCmp {
		return left, true
	}
	p.advance()
	right, ok := p.parseAdditive(prod)
	if !ok {
		return nil, false
	}
	cmp := newBinary(op, left, right)
	if _, again := comparisonOp(p.peek().Kind); again {
		p.report(diag.SynChainedComparison, p.peek().Span,
			"comparison operators cannot be chained; combine comparisons with 'and'",
			production{name: "comparison", start: cmp.Loc})
		return nil, false
	}
	return cmp, true
}

// Additive := Multiplicative ( ("+"|"-") Multiplicative )*
func (p *Parser) parseAdditive(prod production) (ast.Expr, bool) {
	left, ok := p.parseMultiplicative(prod)
	for ok && p.at_or(token.Plus, token.Minus) {
		op := ast.BinAdd
		if p.advance().Kind == token.Minus {
			op = ast.BinSub
		}
		var right ast.Expr
		if right, ok = p.parseMultiplicative(prod); ok {
			left = newBinary(op, left, right)
		}
	}
	return left, ok
}

// Multiplicative := Unary ( ("*"|"/") Unary )*
func (p *Parser) parseMultiplicative(prod production) (ast.Expr, bool) {
	left, ok := p.parseUnary(prod)
	for ok && p.at_or(token.Star, token.Slash) {
		op := ast.BinMul
		if p.advance().Kind == token.Slash {
			op = ast.BinDiv
		}
		var right ast.Expr
		if right, ok = p.parseUnary(prod); ok {
			left = newBinary(op, left, right)
		}
	}
	return left, ok
}

// Unary := ("-"|"!")? Primary
func (p *Parser) parseUnary(prod production) (ast.Expr, bool) {
	if !p.at_or(token.Minus, token.Bang) {
		return p.parsePrimary(prod)
	}
	opTok := p.advance()
	op := ast.UnaryNeg
	if opTok.Kind == token.Bang {
		op = ast.UnaryNot
	}
	x, ok := p.parsePrimary(production{name: "unary '" + opTok.Text + "' operand", start: opTok.Span})
	if !ok {
		return nil, false
	}
	return &ast.Unary{Op: op, X: x, Loc: opTok.Span.Cover(x.Span())}, true
}

func newBinary(op ast.BinaryOp, left, right ast.Expr) *ast.Binary {
	return &ast.Binary{Op: op, Left: left, Right: right, Loc: left.Span().Cover(right.Span())}
}

func comparisonOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Lt:
		return ast.BinLt, true
	case token.LtEq:
		return ast.BinLtEq, true
	case token.Gt:
		return ast.BinGt, true
	case token.GtEq:
		return ast.BinGtEq, true
	case token.EqEq:
		return ast.BinEq, true
	case token.BangEq:
		return ast.BinNotEq, true
	}
	return 0, false
}
