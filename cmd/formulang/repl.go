package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"formulang/internal/ui"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Enter formulas interactively with live diagnostics",
		Long: `Repl re-parses the input on every keystroke. Enter accepts a formula
without errors; accepted formulas are printed in canonical form on exit.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	cmd.Flags().Int("max-depth", 0, "maximum expression nesting (0 = default)")
	cmd.Flags().Bool("strict", false, "require ';' after every statement")
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	model := ui.NewEntryModel(cmd.Context(), s.Config)
	program := tea.NewProgram(model,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	// принятые формулы — в stdout, чтобы их можно было перенаправить в файл
	out := cmd.OutOrStdout()
	for _, formula := range model.Accepted() {
		if _, err := fmt.Fprintln(out, formula); err != nil {
			return err
		}
	}
	return nil
}
