package ast

import "formulang/internal/source"

type NodeKind uint8

const (
	KindProgram NodeKind = iota
	KindVarDecl
	KindExprStmt
	KindLiteral
	KindIdent
	KindCall
	KindUnary
	KindBinary
)

var nodeKindNames = [...]string{
	KindProgram:  "Program",
	KindVarDecl:  "VariableDeclaration",
	KindExprStmt: "ExpressionStatement",
	KindLiteral:  "Literal",
	KindIdent:    "Identifier",
	KindCall:     "CallExpression",
	KindUnary:    "UnaryExpression",
	KindBinary:   "BinaryExpression",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() NodeKind
	Span() source.Span
	node()
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a top-level statement of a Program.
type Stmt interface {
	Node
	stmtNode()
}
