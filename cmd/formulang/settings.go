package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"formulang/internal/diag"
	"formulang/internal/diagfmt"
	"formulang/internal/driver"
	"formulang/internal/observ"
	"formulang/internal/source"
)

// settings is the merged view of formulang.toml and command-line flags.
// Flags win whenever the user set them explicitly.
type settings struct {
	Config   driver.Config
	Jobs     int
	Cache    bool
	Color    string
	Quiet    bool
	Timings  bool
	Manifest *projectManifest
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	s := settings{
		Config: driver.Config{MaxDiagnostics: 100},
		Cache:  true,
		Color:  "auto",
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return s, err
	}
	if manifest != nil {
		s.Manifest = manifest
		cfg := manifest.Config
		s.Config.MaxDepth = cfg.Parser.MaxDepth
		s.Config.StrictSemicolons = cfg.Parser.StrictSemicolons
		if cfg.Check.MaxDiagnostics != nil {
			s.Config.MaxDiagnostics = *cfg.Check.MaxDiagnostics
		}
		s.Jobs = cfg.Check.Jobs
		if cfg.Check.Cache != nil {
			s.Cache = *cfg.Check.Cache
		}
	}

	pf := cmd.Root().PersistentFlags()
	if s.Color, err = pf.GetString("color"); err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch s.Color {
	case "auto", "on", "off":
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.Color)
	}
	if s.Quiet, err = pf.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.Timings, err = pf.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if pf.Changed("max-diagnostics") {
		if s.Config.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	// локальные флаги есть не у всех команд
	flags := cmd.Flags()
	if flags.Lookup("max-depth") != nil && flags.Changed("max-depth") {
		if s.Config.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return s, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		if s.Config.StrictSemicolons, err = flags.GetBool("strict"); err != nil {
			return s, fmt.Errorf("failed to get strict flag: %w", err)
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if s.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("no-cache") != nil && flags.Changed("no-cache") {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return s, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		s.Cache = !noCache
	}
	if s.Config.MaxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must not be negative")
	}
	if s.Config.MaxDepth < 0 {
		return s, fmt.Errorf("--max-depth must not be negative")
	}
	return s, nil
}

// useColor decides colouring for w; auto colours terminals only.
func (s settings) useColor(w io.Writer) bool {
	switch s.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// timer returns nil unless --timings was given; observ.Timer is nil-safe.
func (s settings) timer() *observ.Timer {
	if !s.Timings {
		return nil
	}
	return observ.NewTimer()
}

func (s settings) printTimings(w io.Writer, t *observ.Timer) {
	if t == nil {
		return
	}
	fmt.Fprint(w, t.Summary())
}

type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatShort  diagFormat = "short"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case diagFormatPretty, diagFormatShort, diagFormatJSON:
		return f, nil
	case "":
		return diagFormatPretty, nil
	default:
		return "", fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", value)
	}
}

// printDiagnostics renders bag to w. JSON output is written even for an
// empty bag so that consumers always get a document.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format diagFormat, colored bool) error {
	switch format {
	case diagFormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	case diagFormatShort:
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   1,
			ShowNotes: true,
		})
		return nil
	}
}
