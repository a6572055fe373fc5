package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"formulang/internal/diag"
	"formulang/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	// глобальный color.NoColor не трогаем, решает опция
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", displayPath(f, fs, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if f != nil {
		writeSnippet(w, f, d.Primary, opts, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		pos, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s %s (%s:%d:%d)\n",
			p.note.Sprint("note:"),
			note.Msg,
			displayPath(nf, fs, opts.PathMode), pos.Line, pos.Col,
		)
	}
}

func writeSnippet(w io.Writer, f *source.File, span source.Span, opts PrettyOpts, p palette) {
	start := f.Position(span.Start)
	end := f.Position(span.End)
	if start.Line == 0 {
		return
	}

	first := start.Line
	last := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}
	if n, err := safecast.Conv[uint32](len(f.LineIdx)); err == nil && last > n+1 {
		last = n + 1
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}

		endCol := end.Col
		if end.Line != start.Line {
			// многострочный span подчёркиваем до конца первой строки
			endCol = uint32(len([]rune(text))) + 1
		}
		pad, width := caretGeometry(text, start.Col, endCol)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			pad,
			p.caret.Sprint("^"+strings.Repeat("~", width-1)),
		)
	}
}

// caretGeometry returns the indentation before the caret and the display
// width of the underline for columns [startCol, endCol) of line.
// Tabs are kept as tabs so the caret lines up under them.
func caretGeometry(line string, startCol, endCol uint32) (string, int) {
	var pad strings.Builder
	width := 0
	col := uint32(1)
	for _, r := range line {
		switch {
		case col < startCol:
			if r == '\t' {
				pad.WriteByte('\t')
			} else {
				pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
			}
		case col < endCol:
			width += max(runewidth.RuneWidth(r), 1)
		}
		col++
	}
	if col < startCol {
		// позиция за концом строки (EOF после перевода строки)
		pad.WriteString(strings.Repeat(" ", int(startCol-col)))
	}
	return pad.String(), max(width, 1)
}
