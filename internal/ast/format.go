package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders n back into source form: single spaces around binary
// operators, ';' after every statement and only the parentheses needed to
// keep the same tree when the text is parsed again.
func Format(n Node) string {
	var b strings.Builder
	formatNode(&b, n)
	return b.String()
}

func formatNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		for i, s := range n.Stmts {
			if i > 0 {
				b.WriteByte(' ')
			}
			formatNode(b, s)
		}
	case *VarDecl:
		b.WriteString("var ")
		b.WriteString(n.Name.Name)
		b.WriteString(" = ")
		formatNode(b, n.Init)
		b.WriteByte(';')
	case *ExprStmt:
		formatNode(b, n.X)
		b.WriteByte(';')
	case *Literal:
		b.WriteString(literalText(n))
	case *Ident:
		b.WriteString(n.Name)
	case *Call:
		b.WriteString(n.Callee.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			formatNode(b, a)
		}
		b.WriteByte(')')
	case *Unary:
		b.WriteString(n.Op.String())
		switch n.X.(type) {
		case *Binary, *Unary:
			formatParen(b, n.X)
		default:
			formatNode(b, n.X)
		}
	case *Binary:
		p := n.Op.Precedence()
		if lp := precedenceOf(n.Left); lp < p || (lp == p && n.Op.IsComparison()) {
			formatParen(b, n.Left)
		} else {
			formatNode(b, n.Left)
		}
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		if precedenceOf(n.Right) <= p {
			formatParen(b, n.Right)
		} else {
			formatNode(b, n.Right)
		}
	default:
		panic(fmt.Sprintf("ast.Format: unexpected node type %T", n))
	}
}

func formatParen(b *strings.Builder, n Node) {
	b.WriteByte('(')
	formatNode(b, n)
	b.WriteByte(')')
}

// precedenceOf returns the binding strength of an operand; non-binary
// expressions bind tighter than any operator.
func precedenceOf(e Expr) int {
	if bin, ok := e.(*Binary); ok {
		return bin.Op.Precedence()
	}
	return 100
}

func literalText(l *Literal) string {
	if l.Raw != "" {
		return l.Raw
	}
	switch l.LitKind {
	case LitNumber:
		return strconv.FormatFloat(l.Num, 'f', -1, 64)
	case LitString:
		return QuoteString(l.Str)
	default:
		return strconv.FormatBool(l.Bool)
	}
}

// QuoteString produces a string literal using only the escapes the lexer accepts.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Sexpr renders n as a compact S-expression, e.g.
// (program (expr (< (call RSI 14) 30))).
func Sexpr(n Node) string {
	var b strings.Builder
	sexpr(&b, n)
	return b.String()
}

func sexpr(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		b.WriteString("(program")
		for _, s := range n.Stmts {
			b.WriteByte(' ')
			sexpr(b, s)
		}
		b.WriteByte(')')
	case *VarDecl:
		fmt.Fprintf(b, "(var %s ", n.Name.Name)
		sexpr(b, n.Init)
		b.WriteByte(')')
	case *ExprStmt:
		b.WriteString("(expr ")
		sexpr(b, n.X)
		b.WriteByte(')')
	case *Literal:
		b.WriteString(literalText(n))
	case *Ident:
		b.WriteString(n.Name)
	case *Call:
		b.WriteString("(call ")
		b.WriteString(n.Callee.Name)
		for _, a := range n.Args {
			b.WriteByte(' ')
			sexpr(b, a)
		}
		b.WriteByte(')')
	case *Unary:
		fmt.Fprintf(b, "(%s ", n.Op)
		sexpr(b, n.X)
		b.WriteByte(')')
	case *Binary:
		fmt.Fprintf(b, "(%s ", n.Op)
		sexpr(b, n.Left)
		b.WriteByte(' ')
		sexpr(b, n.Right)
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("ast.Sexpr: unexpected node type %T", n))
	}
}
