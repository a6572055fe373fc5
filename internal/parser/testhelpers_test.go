package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"formulang/internal/ast"
	"formulang/internal/diag"
	"formulang/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t interface{ Helper() }, input string, opts Options) (Result, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rule", []byte(input))
	file := fs.Get(id)
	return ParseFile(context.Background(), file, opts), file
}

// parseOK parses input and fails the test on any diagnostic.
func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	res, _ := parseSource(t, input, Options{})
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return res.Program
}

func singleExpr(t *testing.T, input string) ast.Expr {
	t.Helper()
	prog := parseOK(t, input)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(prog.Stmts))
	}
	st, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Stmts[0])
	}
	return st.X
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
