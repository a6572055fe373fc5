package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/sanity-io/litter"

	"formulang/internal/ast"
	"formulang/internal/source"
)

// ASTNodeOutput is the tagged JSON shape of one syntax tree node.
type ASTNodeOutput struct {
	Kind       string           `json:"kind"`
	Span       [2]uint32        `json:"span"`
	Name       string           `json:"name,omitempty"`
	Operator   string           `json:"operator,omitempty"`
	LitKind    string           `json:"litKind,omitempty"`
	Value      any              `json:"value,omitempty"`
	Raw        string           `json:"raw,omitempty"`
	ID         *ASTNodeOutput   `json:"id,omitempty"`
	Init       *ASTNodeOutput   `json:"init,omitempty"`
	Expression *ASTNodeOutput   `json:"expression,omitempty"`
	Callee     *ASTNodeOutput   `json:"callee,omitempty"`
	Arguments  []*ASTNodeOutput `json:"arguments,omitempty"`
	Argument   *ASTNodeOutput   `json:"argument,omitempty"`
	Left       *ASTNodeOutput   `json:"left,omitempty"`
	Right      *ASTNodeOutput   `json:"right,omitempty"`
	Body       []*ASTNodeOutput `json:"body,omitempty"`
}

// BuildASTOutput converts a node into its JSON shape.
func BuildASTOutput(n ast.Node) *ASTNodeOutput {
	if n == nil {
		return nil
	}
	out := &ASTNodeOutput{
		Kind: n.Kind().String(),
		Span: [2]uint32{n.Span().Start, n.Span().End},
	}
	switch n := n.(type) {
	case *ast.Program:
		out.Body = make([]*ASTNodeOutput, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			out.Body = append(out.Body, BuildASTOutput(s))
		}
	case *ast.VarDecl:
		out.ID = BuildASTOutput(n.Name)
		out.Init = BuildASTOutput(n.Init)
	case *ast.ExprStmt:
		out.Expression = BuildASTOutput(n.X)
	case *ast.Literal:
		out.LitKind = n.LitKind.String()
		out.Raw = n.Raw
		switch n.LitKind {
		case ast.LitNumber:
			// encoding/json не умеет Inf
			if math.IsInf(n.Num, 0) || math.IsNaN(n.Num) {
				out.Value = n.Raw
			} else {
				out.Value = n.Num
			}
		case ast.LitString:
			out.Value = n.Str
		case ast.LitBool:
			out.Value = n.Bool
		}
	case *ast.Ident:
		out.Name = n.Name
	case *ast.Call:
		out.Callee = BuildASTOutput(n.Callee)
		out.Arguments = make([]*ASTNodeOutput, 0, len(n.Args))
		for _, a := range n.Args {
			out.Arguments = append(out.Arguments, BuildASTOutput(a))
		}
	case *ast.Unary:
		out.Operator = n.Op.String()
		out.Argument = BuildASTOutput(n.X)
	case *ast.Binary:
		out.Operator = n.Op.String()
		out.Left = BuildASTOutput(n.Left)
		out.Right = BuildASTOutput(n.Right)
	}
	return out
}

// FormatASTJSON writes the tree as indented tagged JSON.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(prog))
}

// FormatASTSexpr writes the compact S-expression form followed by a newline.
func FormatASTSexpr(w io.Writer, prog *ast.Program) error {
	_, err := fmt.Fprintln(w, ast.Sexpr(prog))
	return err
}

var locField = regexp.MustCompile(`^Loc$`)

// FormatASTDump writes a Go-literal dump of the tree. Spans are omitted
// unless withSpans is set.
func FormatASTDump(w io.Writer, prog *ast.Program, withSpans bool) error {
	opts := litter.Options{
		HomePackage:       "ast",
		HidePrivateFields: true,
		HideZeroValues:    true,
	}
	if !withSpans {
		opts.FieldExclusions = locField
	}
	_, err := io.WriteString(w, opts.Sdump(prog)+"\n")
	return err
}

type treeNode struct {
	label    string
	children []*treeNode
}

func buildTreeNode(n ast.Node, fs *source.FileSet) *treeNode {
	label := n.Kind().String()
	var kids []ast.Node
	switch n := n.(type) {
	case *ast.Program:
		for _, s := range n.Stmts {
			kids = append(kids, s)
		}
	case *ast.VarDecl:
		label += " " + n.Name.Name
		kids = append(kids, n.Init)
	case *ast.ExprStmt:
		kids = append(kids, n.X)
	case *ast.Literal:
		label += " " + n.LitKind.String() + " " + literalLabel(n)
	case *ast.Ident:
		label += " " + n.Name
	case *ast.Call:
		label += " " + n.Callee.Name + "/" + strconv.Itoa(len(n.Args))
		for _, a := range n.Args {
			kids = append(kids, a)
		}
	case *ast.Unary:
		label += " " + n.Op.String()
		kids = append(kids, n.X)
	case *ast.Binary:
		label += " " + n.Op.String()
		kids = append(kids, n.Left, n.Right)
	}
	node := &treeNode{label: label + " (span: " + formatSpan(n.Span(), fs) + ")"}
	for _, k := range kids {
		node.children = append(node.children, buildTreeNode(k, fs))
	}
	return node
}

func literalLabel(l *ast.Literal) string {
	switch l.LitKind {
	case ast.LitString:
		return ast.QuoteString(l.Str)
	case ast.LitBool:
		return strconv.FormatBool(l.Bool)
	default:
		return l.Raw
	}
}

func writeTree(w io.Writer, n *treeNode, prefix string) {
	for i, child := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, child.label)
		writeTree(w, child, prefix+next)
	}
}

// FormatASTPretty печатает дерево с псевдографикой, по узлу в строке.
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	root := buildTreeNode(prog, fs)
	if fs != nil {
		if f := fs.Get(prog.Loc.File); f != nil {
			root.label = f.Path + ": " + root.label
		}
	}
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	writeTree(w, root, "")
	return nil
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("%d-%d", span.Start, span.End)
}
