package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"formulang/internal/ast"
	"formulang/internal/source"
)

// CheckSpanInvariants runs span invariants on a parsed program:
// 1) every node span is non-empty, points to sf and lies within its content
// 2) every child span is contained in its parent's span
// 3) statements appear in strictly increasing, non-overlapping order
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, st := range prog.Stmts {
		sp := st.Span()
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("statement %d span %v overlaps the previous one ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
		if len(prog.Stmts) > 0 && !prog.Loc.Contains(sp) {
			return fmt.Errorf("program span %v does not contain statement %v", prog.Loc, sp)
		}
	}

	var stack []source.Span
	var failure error
	ast.Inspect(prog, func(n ast.Node) bool {
		if failure != nil {
			return false
		}
		if n == nil {
			stack = stack[:len(stack)-1]
			return true
		}
		sp := n.Span()
		if _, isProg := n.(*ast.Program); !isProg || len(prog.Stmts) > 0 {
			failure = checkNodeSpan(n, sp, sf.ID, lenContent)
		}
		if failure == nil && len(stack) > 0 {
			if parent := stack[len(stack)-1]; !parent.Contains(sp) {
				failure = fmt.Errorf("%s span %v is outside its parent %v", n.Kind(), sp, parent)
			}
		}
		stack = append(stack, sp)
		return failure == nil
	})
	return failure
}

func checkNodeSpan(n ast.Node, sp source.Span, file source.FileID, lenContent uint32) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", n.Kind(), sp)
	}
	if sp.File != file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind(), sp.File, file)
	}
	if sp.End > lenContent {
		return fmt.Errorf("%s span end beyond content: %d > %d", n.Kind(), sp.End, lenContent)
	}
	return nil
}
