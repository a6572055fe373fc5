package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses the tree depth-first in source order.
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(v, s)
		}
	case *VarDecl:
		Walk(v, n.Name)
		Walk(v, n.Init)
	case *ExprStmt:
		Walk(v, n.X)
	case *Literal, *Ident:
	case *Call:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *Unary:
		Walk(v, n.X)
	case *Binary:
		Walk(v, n.Left)
		Walk(v, n.Right)
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect calls f for every node in depth-first order. If f returns false the
// children of that node are skipped. After the children f is called with nil.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	c := 0
	Inspect(n, func(x Node) bool {
		if x != nil {
			c++
		}
		return true
	})
	return c
}
