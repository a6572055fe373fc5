package ast

import "fmt"

// Equal reports whether a and b have the same structure and values.
// Spans and the raw spelling of literals are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Program:
		y := b.(*Program)
		if len(x.Stmts) != len(y.Stmts) {
			return false
		}
		for i := range x.Stmts {
			if !Equal(x.Stmts[i], y.Stmts[i]) {
				return false
			}
		}
		return true
	case *VarDecl:
		y := b.(*VarDecl)
		return Equal(x.Name, y.Name) && Equal(x.Init, y.Init)
	case *ExprStmt:
		return Equal(x.X, b.(*ExprStmt).X)
	case *Literal:
		y := b.(*Literal)
		if x.LitKind != y.LitKind {
			return false
		}
		switch x.LitKind {
		case LitNumber:
			return x.Num == y.Num
		case LitString:
			return x.Str == y.Str
		default:
			return x.Bool == y.Bool
		}
	case *Ident:
		return x.Name == b.(*Ident).Name
	case *Call:
		y := b.(*Call)
		if !Equal(x.Callee, y.Callee) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Unary:
		y := b.(*Unary)
		return x.Op == y.Op && Equal(x.X, y.X)
	case *Binary:
		y := b.(*Binary)
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	panic(fmt.Sprintf("ast.Equal: unexpected node type %T", a))
}
