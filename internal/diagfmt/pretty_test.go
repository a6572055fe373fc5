package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"formulang/internal/diag"
	"formulang/internal/source"
)

func bagWith(t *testing.T, path, src string, start, end uint32, notes ...diag.Note) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	bag := diag.NewBag(0)
	d := diag.New(diag.SevError, diag.SynExpectExpression, source.Span{File: id, Start: start, End: end}, "expected expression, got ';'")
	for _, n := range notes {
		n.Span.File = id
		d = d.WithNote(n.Span, n.Msg)
	}
	require.True(t, bag.Add(d))
	return bag, fs
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	bag, fs := bagWith(t, "rules/a.rule", "var x = ;", 8, 9,
		diag.Note{Span: source.Span{Start: 0, End: 9}, Msg: "while parsing variable declaration"})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 4)
	require.Equal(t, "rules/a.rule:1:9: ERROR SYN2203: expected expression, got ';'", lines[0])
	require.Equal(t, "1 | var x = ;", lines[1])
	require.Equal(t, "  |         ^", lines[2])
	require.Equal(t, "  note: while parsing variable declaration (rules/a.rule:1:1)", lines[3])
}

func TestPrettyUnderlineWidth(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		start, end uint32
		want       string
	}{
		{name: "ascii", src: "RSI(14) < 30", start: 0, end: 7, want: "  | ^~~~~~~"},
		{name: "wide runes", src: "名前 + 1", start: 0, end: 6, want: "  | ^~~~"},
		{name: "after wide", src: "名前 + x", start: 9, end: 10, want: "  |        ^"},
		{name: "tab kept", src: "\tx + 1", start: 1, end: 2, want: "  | \t^"},
		{name: "empty span", src: "x", start: 1, end: 1, want: "  |  ^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := bagWith(t, "f.rule", tt.src, tt.start, tt.end)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, 3)
			require.Equal(t, tt.want, lines[2])
		})
	}
}

func TestPrettyContextLines(t *testing.T) {
	src := "var a = 1;\nvar b = ;\nvar c = 3;\n"
	bag, fs := bagWith(t, "ctx.rule", src, 19, 20)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	require.Contains(t, out, "1 | var a = 1;\n")
	require.Contains(t, out, "2 | var b = ;\n")
	require.Contains(t, out, "  |         ^\n")
	require.Contains(t, out, "3 | var c = 3;\n")
	require.NotContains(t, out, "note:")
}

func TestPrettyColorToggle(t *testing.T) {
	bag, fs := bagWith(t, "c.rule", "var x = ;", 8, 9)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	require.NotContains(t, plain.String(), "\x1b[")
	require.Contains(t, colored.String(), "\x1b[")
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.Add("/home/user/project/rules/test.rule", []byte("var x = ;"), 0)
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: id, Start: 8, End: 9}, "expected expression"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/rules/test.rule:1:9"},
		{PathModeRelative, "rules/test.rule:1:9"},
		{PathModeBasename, "test.rule:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			require.True(t, strings.HasPrefix(buf.String(), tt.want+": "), buf.String())
		})
	}
}

func TestParsePathMode(t *testing.T) {
	m, ok := ParsePathMode("rel")
	require.True(t, ok)
	require.Equal(t, PathModeRelative, m)
	_, ok = ParsePathMode("nope")
	require.False(t, ok)
}

func TestJSONOutput(t *testing.T) {
	bag, fs := bagWith(t, "a.rule", "var x = ;", 8, 9,
		diag.Note{Span: source.Span{Start: 0, End: 9}, Msg: "while parsing variable declaration"})

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	require.Equal(t, 1, out.Errors)
	require.False(t, out.Truncated)

	d := out.Diagnostics[0]
	require.Equal(t, "ERROR", d.Severity)
	require.Equal(t, "SYN2203", d.Code)
	require.Equal(t, "Expect expression", d.Title)
	require.Equal(t, "a.rule", d.Location.File)
	require.Equal(t, uint32(8), d.Location.StartByte)
	require.Equal(t, uint32(9), d.Location.EndByte)
	require.Equal(t, uint32(1), d.Location.StartLine)
	require.Equal(t, uint32(9), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	require.Equal(t, "while parsing variable declaration", d.Notes[0].Message)
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.rule", []byte("a b c"))
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: i * 2, End: i*2 + 1}, "unexpected"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	require.Equal(t, 2, out.Count)
	require.Equal(t, 3, out.Errors)
	require.True(t, out.Truncated)
	require.Zero(t, out.Diagnostics[0].Location.StartLine)
	require.Nil(t, out.Diagnostics[0].Notes)
}
