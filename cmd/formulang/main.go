package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"formulang/internal/prof"
	"formulang/internal/trace"
	"formulang/internal/version"
)

// errDiagnostics сигнализирует, что команда отработала, но нашла ошибки:
// диагностики уже напечатаны, нужен только код выхода 1.
var errDiagnostics = errors.New("errors reported")

// session holds per-invocation state that outlives a single RunE.
type session struct {
	cleanup  func(failed bool)
	profiler *prof.Session
}

// finish stops profiling and flushes tracing; failed dumps the trace ring
// buffer, if any.
func (s *session) finish(failed bool) {
	if err := s.profiler.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "formulang: profiling: %v\n", err)
	}
	s.profiler = nil
	if s.cleanup != nil {
		s.cleanup(failed)
		s.cleanup = nil
	}
}

func newRootCmd() (*cobra.Command, *session) {
	sess := &session{}
	rootCmd := &cobra.Command{
		Use:           "formulang",
		Short:         "Formula language front end",
		Long:          `formulang tokenizes, parses and checks trading formulas such as "RSI(14) < 30 and close > EMA(50)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Info(false),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if sess.cleanup, err = setupTracing(cmd); err != nil {
				return err
			}
			sess.profiler, err = setupProfiling(cmd)
			return err
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to report (0 = unlimited)")
	pf.String("trace", "", "write trace events to file (- for stderr, *.ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	pf.Int("trace-ring-size", trace.DefaultRingSize, "ring buffer capacity for --trace-mode=ring|both")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newReplCmd(),
		newVersionCmd(),
	)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	return rootCmd, sess
}

// main builds the command tree and executes it. Any error, including
// reported diagnostics, exits with status 1.
func main() {
	rootCmd, sess := newRootCmd()
	err := rootCmd.Execute()
	sess.finish(err != nil)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "formulang: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
