package main

import (
	"fmt"
	"io"
)

// formulaInput is the text a command works on, with the name used in
// diagnostics.
type formulaInput struct {
	Name string
	Text string
	Path string // пусто для stdin и --expr
}

// readFormulaInput resolves "<file|->" or an inline --expr value.
func readFormulaInput(stdin io.Reader, args []string, expr string, exprSet bool) (formulaInput, error) {
	switch {
	case exprSet && len(args) > 0:
		return formulaInput{}, fmt.Errorf("--expr and a file argument are mutually exclusive")
	case exprSet:
		return formulaInput{Name: "<expr>", Text: expr}, nil
	case len(args) != 1:
		return formulaInput{}, fmt.Errorf("expected exactly one file argument (or - for stdin, or --expr)")
	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return formulaInput{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return formulaInput{Name: "<stdin>", Text: string(data)}, nil
	default:
		return formulaInput{Name: args[0], Path: args[0]}, nil
	}
}
