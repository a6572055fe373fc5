package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"formulang/internal/ast"
	"formulang/internal/diagfmt"
	"formulang/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|->",
		Short: "Parse a formula source and print its AST",
		Long: `Parse builds the syntax tree of a formula source. Diagnostics go to stderr;
the (possibly partial) tree goes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sexpr|dump|fmt)")
	cmd.Flags().String("expr", "", "parse this text instead of a file")
	cmd.Flags().Bool("spans", false, "include spans in --format=dump")
	cmd.Flags().Int("max-depth", 0, "maximum expression nesting (0 = default)")
	cmd.Flags().Bool("strict", false, "require ';' after every statement")
	cmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sexpr", "dump", "fmt":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	diagFlag, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	dformat, err := readDiagFormat(diagFlag)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	input, err := readFormulaInput(cmd.InOrStdin(), args, expr, cmd.Flags().Changed("expr"))
	if err != nil {
		return err
	}

	timer := s.timer()
	done := timer.Track("parse")
	var result *driver.ParseResult
	if input.Path != "" {
		result, err = driver.Parse(cmd.Context(), input.Path, s.Config)
	} else {
		result, err = driver.ParseSource(cmd.Context(), input.Name, input.Text, s.Config)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	done(fmt.Sprintf("%d statements", len(result.Program.Stmts)))

	stderr := cmd.ErrOrStderr()
	if err := printDiagnostics(stderr, result.Bag, result.FileSet, dformat, s.useColor(stderr)); err != nil {
		return err
	}
	if err := writeProgram(cmd.OutOrStdout(), format, result, withSpans); err != nil {
		return err
	}
	s.printTimings(stderr, timer)

	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func writeProgram(w io.Writer, format string, result *driver.ParseResult, withSpans bool) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(w, result.Program)
	case "sexpr":
		return diagfmt.FormatASTSexpr(w, result.Program)
	case "dump":
		return diagfmt.FormatASTDump(w, result.Program, withSpans)
	case "fmt":
		text := ast.Format(result.Program)
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		return diagfmt.FormatASTPretty(w, result.Program, result.FileSet)
	}
}
