package ast

import "formulang/internal/source"

// Program is the root of a parsed source. It is owned by the caller of Parse.
type Program struct {
	Stmts []Stmt
	Loc   source.Span
}

// VarDecl is `var Name = Init;`.
type VarDecl struct {
	Name *Ident
	Init Expr
	Loc  source.Span
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X   Expr
	Loc source.Span
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitNumber:
		return "number"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	}
	return "LitKind(?)"
}

// Literal holds a number, string or boolean. Raw is the source lexeme;
// exactly one of Num, Str, Bool is meaningful depending on LitKind.
type Literal struct {
	LitKind LitKind
	Raw     string
	Num     float64
	Str     string
	Bool    bool
	Loc     source.Span
}

type Ident struct {
	Name string
	Loc  source.Span
}

// Call is `Callee(Args...)`. The callee is always a plain identifier.
type Call struct {
	Callee *Ident
	Args   []Expr
	Loc    source.Span
}

type Unary struct {
	Op  UnaryOp
	X   Expr
	Loc source.Span
}

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Loc   source.Span
}

func (*Program) Kind() NodeKind  { return KindProgram }
func (*VarDecl) Kind() NodeKind  { return KindVarDecl }
func (*ExprStmt) Kind() NodeKind { return KindExprStmt }
func (*Literal) Kind() NodeKind  { return KindLiteral }
func (*Ident) Kind() NodeKind    { return KindIdent }
func (*Call) Kind() NodeKind     { return KindCall }
func (*Unary) Kind() NodeKind    { return KindUnary }
func (*Binary) Kind() NodeKind   { return KindBinary }

func (n *Program) Span() source.Span  { return n.Loc }
func (n *VarDecl) Span() source.Span  { return n.Loc }
func (n *ExprStmt) Span() source.Span { return n.Loc }
func (n *Literal) Span() source.Span  { return n.Loc }
func (n *Ident) Span() source.Span    { return n.Loc }
func (n *Call) Span() source.Span     { return n.Loc }
func (n *Unary) Span() source.Span    { return n.Loc }
func (n *Binary) Span() source.Span   { return n.Loc }

func (*Program) node()  {}
func (*VarDecl) node()  {}
func (*ExprStmt) node() {}
func (*Literal) node()  {}
func (*Ident) node()    {}
func (*Call) node()     {}
func (*Unary) node()    {}
func (*Binary) node()   {}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Call) exprNode()    {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}

func (*VarDecl) stmtNode()  {}
func (*ExprStmt) stmtNode() {}
