package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	id1 := fs.Add("test.rule", []byte("RSI(14) < 30"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.rule")
	if !exists || latestID != id1 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latestID, exists, id1)
	}

	// Добавляем тот же файл с новым содержимым
	id2 := fs.Add("test.rule", []byte("RSI(14) < 25"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, _ = fs.GetLatest("test.rule")
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// Старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "RSI(14) < 30" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Errorf("different content must produce different hashes")
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.rule", []byte("var a = 1;\nvar b = 2;\n\nEMA(9)"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "var a = 1;"},
		{2, "var b = 2;"},
		{3, ""},
		{4, "EMA(9)"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLineStart(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.rule", []byte("ab\ncd\n\nx")))

	want := map[uint32]uint32{0: 0, 1: 0, 2: 3, 3: 6, 4: 7, 9: 8}
	for line, off := range want {
		if got := f.LineStart(line); got != off {
			t.Errorf("LineStart(%d) = %d, want %d", line, got, off)
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.rule", []byte("a\nbb cc"))
	start, end := fs.Resolve(Span{File: id, Start: 5, End: 7})
	if start != (LineCol{Line: 2, Col: 4}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 6}) {
		t.Errorf("end = %+v", end)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rule")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("var x = 1;\r\nx > 0;\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var x = 1;\nx > 0;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "crlf.rule" {
		t.Errorf("FormatPath(relative) = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "crlf.rule" {
		t.Errorf("FormatPath(basename) = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.rule")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestVirtualPathIsKeptVerbatim(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("signals.rules.yaml#oversold", []byte("RSI(14) < 30"))
	if got := fs.Get(id).FormatPath("absolute", ""); got != "signals.rules.yaml#oversold" {
		t.Errorf("FormatPath = %q", got)
	}
}
