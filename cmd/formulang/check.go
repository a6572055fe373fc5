package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"formulang/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Parse every rule source under the given paths",
		Long: `Check parses *.rule files and *.rules.yaml rule sets found under each path
(default: the current directory) in parallel and reports all diagnostics.`,
		RunE: runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the diagnostics cache")
	cmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().Int("max-depth", 0, "maximum expression nesting (0 = default)")
	cmd.Flags().Bool("strict", false, "require ';' after every statement")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
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

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	opts := driver.CheckOptions{
		Jobs:  s.Jobs,
		Timer: s.timer(),
	}
	if s.Cache {
		cache, err := driver.OpenDiskCache("formulang")
		if err != nil {
			// без кэша всё работает, только медленнее
			if !s.Quiet {
				fmt.Fprintf(stderr, "warning: diagnostics cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	var result *driver.CheckResult
	// JSON в stdout несовместим с прогресс-баром
	if dformat != diagFormatJSON && !s.Quiet && shouldUseTUI(mode, stdout) {
		result, err = runCheckWithUI(cmd.Context(), stdout, "checking "+strings.Join(roots, " "), roots, s.Config, opts)
	} else {
		result, err = driver.Check(cmd.Context(), roots, s.Config, opts)
	}
	if err != nil {
		if result == nil || !errors.Is(err, cmd.Context().Err()) {
			return fmt.Errorf("check failed: %w", err)
		}
	}

	bag := result.Diagnostics()
	// JSON — в stdout (это и есть результат), текстовые форматы — в stderr
	diagOut := stderr
	if dformat == diagFormatJSON {
		diagOut = stdout
	}
	if err := printDiagnostics(diagOut, bag, result.FileSet, dformat, s.useColor(diagOut)); err != nil {
		return err
	}
	if !s.Quiet && dformat != diagFormatJSON {
		printCheckSummary(stdout, result)
	}
	s.printTimings(stderr, opts.Timer)

	if err != nil {
		return err
	}
	if result.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printCheckSummary(w io.Writer, result *driver.CheckResult) {
	var cached, halted int
	for i := range result.Units {
		if result.Units[i].Cached {
			cached++
		}
		if result.Units[i].Halted {
			halted++
		}
	}
	fmt.Fprintf(w, "checked %d formula(s): %d error(s)", len(result.Units), result.ErrorCount())
	if cached > 0 {
		fmt.Fprintf(w, ", %d cached", cached)
	}
	if halted > 0 {
		fmt.Fprintf(w, ", %d halted", halted)
	}
	fmt.Fprintln(w)
}
