package parser

import (
	"strconv"

	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/lexer"
	"formulang/internal/source"
	"formulang/internal/token"
)

// Primary := Number | String | "true" | "false"
//
//	| Identifier ( "(" ArgList? ")" )?
//	| "(" Expression ")"
func (p *Parser) parsePrimary(prod production) (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		// лексер пропускает только digits('.'digits)?; переполнение даёт ±Inf
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return &ast.Literal{LitKind: ast.LitNumber, Raw: tok.Text, Num: v, Loc: tok.Span}, true

	case token.StringLit:
		p.advance()
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.LexBadEscape, tok.Span, err.Error(), prod)
			return nil, false
		}
		return &ast.Literal{LitKind: ast.LitString, Raw: tok.Text, Str: s, Loc: tok.Span}, true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Literal{LitKind: ast.LitBool, Raw: tok.Text, Bool: tok.Kind == token.KwTrue, Loc: tok.Span}, true

	case token.Ident:
		p.advance()
		id := &ast.Ident{Name: tok.Text, Loc: tok.Span}
		if p.at(token.LParen) {
			return p.parseCall(id)
		}
		return id, true

	case token.LParen:
		return p.parseParen()
	}

	p.errAtPeek(diag.SynExpectExpression, "expected expression", prod)
	return nil, false
}

// parseCall := Identifier "(" ( Expression ( "," Expression )* )? ")"
func (p *Parser) parseCall(callee *ast.Ident) (ast.Expr, bool) {
	open := p.advance()
	prod := production{name: "arguments of call to '" + callee.Name + "'", start: callee.Loc.Cover(open.Span)}
	call := &ast.Call{Callee: callee}

	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr(prod)
			if !ok {
				return nil, false
			}
			call.Args = append(call.Args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	closeTok, ok := p.expectClose(open.Span, "expected ',' or ')' in argument list", prod)
	if !ok {
		return nil, false
	}
	call.Loc = callee.Loc.Cover(closeTok.Span)
	return call, true
}

// "(" Expression ")" — отдельного узла нет, span выражения расширяется на скобки.
func (p *Parser) parseParen() (ast.Expr, bool) {
	open := p.advance()
	prod := production{name: "parenthesized expression", start: open.Span}
	inner, ok := p.parseExpr(prod)
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expectClose(open.Span, "expected ')'", prod)
	if !ok {
		return nil, false
	}
	setExprSpan(inner, open.Span.Cover(closeTok.Span))
	return inner, true
}

// expectClose ждёт ')' и при ошибке добавляет заметку на открывающую скобку.
func (p *Parser) expectClose(open source.Span, msg string, prod production) (token.Token, bool) {
	if p.at(token.RParen) {
		return p.advance(), true
	}
	tok := p.peek()
	if tok.Kind != token.Invalid && !p.halted && !p.opts.Enough() {
		p.opts.CurrentErrors++
		diag.ReportError(p.rep, diag.SynUnclosedParen, tok.Span, msg+", got "+tok.Describe()).
			WithNote(open, "'(' opened here").
			WithNote(prod.start, "while parsing "+prod.name).
			Emit()
	}
	return tok, false
}

func setExprSpan(e ast.Expr, sp source.Span) {
	switch e := e.(type) {
	case *ast.Literal:
		e.Loc = sp
	case *ast.Ident:
		e.Loc = sp
	case *ast.Call:
		e.Loc = sp
	case *ast.Unary:
		e.Loc = sp
	case *ast.Binary:
		e.Loc = sp
	}
}

func setStmtSpan(st ast.Stmt, sp source.Span) {
	switch st := st.(type) {
	case *ast.VarDecl:
		st.Loc = sp
	case *ast.ExprStmt:
		st.Loc = sp
	}
}
