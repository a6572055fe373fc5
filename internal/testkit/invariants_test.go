package testkit

import (
	"strings"
	"testing"

	"formulang/internal/ast"
	"formulang/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.rule", []byte("a + b; c;")))
	sp := func(s, e uint32) source.Span { return source.Span{File: sf.ID, Start: s, End: e} }

	good := &ast.Program{Loc: sp(0, 9), Stmts: []ast.Stmt{
		&ast.ExprStmt{Loc: sp(0, 6), X: &ast.Binary{Op: ast.BinAdd, Loc: sp(0, 5),
			Left: &ast.Ident{Name: "a", Loc: sp(0, 1)}, Right: &ast.Ident{Name: "b", Loc: sp(4, 5)}}},
		&ast.ExprStmt{Loc: sp(7, 9), X: &ast.Ident{Name: "c", Loc: sp(7, 8)}},
	}}
	if err := CheckSpanInvariants(good, sf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	escaping := &ast.Program{Loc: sp(0, 9), Stmts: []ast.Stmt{
		&ast.ExprStmt{Loc: sp(0, 2), X: &ast.Ident{Name: "a", Loc: sp(0, 5)}},
	}}
	if err := CheckSpanInvariants(escaping, sf); err == nil || !strings.Contains(err.Error(), "outside its parent") {
		t.Fatalf("expected containment error, got %v", err)
	}

	overlapping := &ast.Program{Loc: sp(0, 9), Stmts: []ast.Stmt{
		&ast.ExprStmt{Loc: sp(0, 6), X: &ast.Ident{Name: "a", Loc: sp(0, 1)}},
		&ast.ExprStmt{Loc: sp(4, 9), X: &ast.Ident{Name: "c", Loc: sp(7, 8)}},
	}}
	if err := CheckSpanInvariants(overlapping, sf); err == nil {
		t.Fatal("expected overlap error")
	}

	if err := CheckSpanInvariants(&ast.Program{}, sf); err != nil {
		t.Fatalf("empty program is valid: %v", err)
	}
}
