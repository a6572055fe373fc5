package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"formulang/internal/diagfmt"
	"formulang/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|->",
		Short: "Tokenize a formula source",
		Long:  `Tokenize breaks a formula source into tokens, trivia included`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("expr", "", "tokenize this text instead of a file")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	input, err := readFormulaInput(cmd.InOrStdin(), args, expr, cmd.Flags().Changed("expr"))
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	var result *driver.TokenizeResult
	if input.Path != "" {
		result, err = driver.Tokenize(input.Path, s.Config.MaxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	} else {
		result = driver.TokenizeSource(input.Name, input.Text, s.Config.MaxDiagnostics)
	}

	// Выводим диагностику в stderr, если есть
	stderr := cmd.ErrOrStderr()
	if err := printDiagnostics(stderr, result.Bag, result.FileSet, diagFormatPretty, s.useColor(stderr)); err != nil {
		return err
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
