package parser

import (
	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/token"
)

// parseStatement := VarDecl ";" | ExprStmt ";"
//
// ';' перед EOF необязателен, если не включён StrictSemicolons.
// Если оператор разобран целиком, но вместо ';' пришёл чужой токен,
// оператор сохраняется, а хвост выбрасывается до ближайшего ';'.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	var (
		st ast.Stmt
		ok bool
	)
	if p.at(token.KwVar) {
		st, ok = p.parseVarDecl()
	} else {
		st, ok = p.parseExprStmt()
	}
	if !ok {
		if !p.halted {
			p.resyncStatement()
		}
		return nil, false
	}

	switch {
	case p.at(token.Semicolon):
		semi := p.advance()
		setStmtSpan(st, st.Span().Cover(semi.Span))
	case p.at(token.EOF) && !p.opts.StrictSemicolons:
	case p.at(token.RParen):
		p.report(diag.SynUnexpectedToken, p.peek().Span, "unexpected ')' without matching '('",
			production{name: stmtName(st), start: st.Span()})
		p.resyncStatement()
	default:
		p.errAtPeek(diag.SynExpectSemicolon, "expected ';' after "+stmtName(st),
			production{name: stmtName(st), start: st.Span()})
		p.resyncStatement()
	}
	return st, true
}

// parseVarDecl := "var" Identifier "=" Expression
func (p *Parser) parseVarDecl() (*ast.VarDecl, bool) {
	kw := p.advance()
	prod := production{name: "variable declaration", start: kw.Span}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'var'", prod)
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after variable name", prod); !ok {
		return nil, false
	}
	init, ok := p.parseExpr(prod)
	if !ok {
		return nil, false
	}
	return &ast.VarDecl{
		Name: &ast.Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Init: init,
		Loc:  kw.Span.Cover(init.Span()),
	}, true
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, bool) {
	prod := production{name: "expression statement", start: p.peek().Span}
	x, ok := p.parseExpr(prod)
	if !ok {
		return nil, false
	}
	return &ast.ExprStmt{X: x, Loc: x.Span()}, true
}

func stmtName(st ast.Stmt) string {
	if _, ok := st.(*ast.VarDecl); ok {
		return "variable declaration"
	}
	return "expression statement"
}
