package parser

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"formulang/internal/ast"
	"formulang/internal/testkit"
)

var identNames = []string{"a", "b", "x", "RSI", "EMA", "close", "_v1", "цена"}

func genExpr(depth int) *rapid.Generator[ast.Expr] {
	return rapid.Custom(func(t *rapid.T) ast.Expr {
		choice := rapid.IntRange(0, 6).Draw(t, "choice")
		if depth <= 0 {
			choice %= 3
		}
		switch choice {
		case 0:
			whole := rapid.IntRange(0, 100000).Draw(t, "whole")
			frac := rapid.IntRange(0, 3).Draw(t, "frac")
			return &ast.Literal{LitKind: ast.LitNumber, Num: float64(whole) + float64(frac)/4}
		case 1:
			s := rapid.StringOf(rapid.RuneFrom([]rune{'a', 'Z', ' ', '"', '\\', '\n', 'é'})).Draw(t, "str")
			if rapid.Bool().Draw(t, "isBool") {
				return &ast.Literal{LitKind: ast.LitBool, Bool: len(s)%2 == 0}
			}
			return &ast.Literal{LitKind: ast.LitString, Str: s}
		case 2:
			return &ast.Ident{Name: rapid.SampledFrom(identNames).Draw(t, "ident")}
		case 3:
			args := rapid.SliceOfN(genExpr(depth-1), 0, 3).Draw(t, "args")
			return &ast.Call{Callee: &ast.Ident{Name: rapid.SampledFrom(identNames).Draw(t, "callee")}, Args: args}
		case 4:
			op := rapid.SampledFrom([]ast.UnaryOp{ast.UnaryNeg, ast.UnaryNot}).Draw(t, "uop")
			return &ast.Unary{Op: op, X: genExpr(depth-1).Draw(t, "x")}
		default:
			op := ast.BinaryOp(rapid.IntRange(int(ast.BinOr), int(ast.BinDiv)).Draw(t, "bop"))
			return &ast.Binary{Op: op, Left: genExpr(depth-1).Draw(t, "l"), Right: genExpr(depth-1).Draw(t, "r")}
		}
	})
}

func genProgram() *rapid.Generator[*ast.Program] {
	return rapid.Custom(func(t *rapid.T) *ast.Program {
		n := rapid.IntRange(0, 4).Draw(t, "stmts")
		prog := &ast.Program{}
		for i := 0; i < n; i++ {
			x := genExpr(4).Draw(t, "expr")
			if rapid.Bool().Draw(t, "isVar") {
				name := rapid.SampledFrom(identNames).Draw(t, "name")
				prog.Stmts = append(prog.Stmts, &ast.VarDecl{Name: &ast.Ident{Name: name}, Init: x})
			} else {
				prog.Stmts = append(prog.Stmts, &ast.ExprStmt{X: x})
			}
		}
		return prog
	})
}

// Formatting a tree and parsing the text back yields the same tree.
func TestPropertyFormatReparseIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prog := genProgram().Draw(t, "prog")
		text := ast.Format(prog)
		res, file := parseSource(t, text, Options{StrictSemicolons: true})
		if res.Bag.Len() != 0 {
			t.Fatalf("formatted text %q did not parse: %s", text, diagnosticsSummary(res.Bag))
		}
		if !ast.Equal(prog, res.Program) {
			t.Fatalf("round trip changed the tree:\n in  %s\n out %s", ast.Sexpr(prog), ast.Sexpr(res.Program))
		}
		if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
			t.Fatalf("%q: %v", text, err)
		}
	})
}

// Re-serialising a successful parse and parsing again is a fixed point.
func TestPropertyIdempotentReparse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prog := genProgram().Draw(t, "prog")
		parts := make([]string, len(prog.Stmts))
		for i, st := range prog.Stmts {
			parts[i] = ast.Format(st)
		}
		sep := rapid.SampledFrom([]string{" ", "\n\n", "\t// note\n"}).Draw(t, "sep")
		text := strings.Join(parts, sep)

		first, _ := parseSource(t, text, Options{})
		if first.Bag.Len() != 0 {
			t.Fatalf("%q: %s", text, diagnosticsSummary(first.Bag))
		}
		formatted := ast.Format(first.Program)
		again, _ := parseSource(t, formatted, Options{})
		if again.Bag.Len() != 0 || !ast.Equal(first.Program, again.Program) {
			t.Fatalf("re-parse differs for %q", text)
		}
		if ast.Format(again.Program) != formatted {
			t.Fatalf("Format is not a fixed point: %q vs %q", ast.Format(again.Program), formatted)
		}
	})
}

var soup = []string{
	"var", "and", "or", "true", "false", "x", "f", "1", "2.5", "1.", `"s"`, `"open`,
	"=", "==", "!", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/",
	";", ",", "(", ")", " ", "\n", "#",
}

// Any input terminates with a non-nil program and diagnostics inside the file.
func TestPropertyTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOf(rapid.SampledFrom(soup)).Draw(t, "parts")
		src := strings.Join(parts, " ")
		res, file := parseSource(t, src, Options{MaxDepth: 8})
		if res.Program == nil {
			t.Fatal("nil program")
		}
		for _, d := range res.Bag.Items() {
			if int(d.Primary.End) > len(file.Content) || d.Primary.Start > d.Primary.End {
				t.Fatalf("diagnostic span %v out of bounds for %q", d.Primary, src)
			}
		}
		if res.Bag.Len() == 0 {
			if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
				t.Fatalf("%q: %v", src, err)
			}
		}
	})
}
