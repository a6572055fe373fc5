package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the command tree in a clean working directory so that no
// formulang.toml from the repository leaks into the result.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root, sess := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	sess.finish(err != nil)
	return out.String(), errOut.String(), err
}

func TestParseExprSexpr(t *testing.T) {
	t.Chdir(t.TempDir())
	out, errOut, err := runCLI(t, "", "parse", "--expr", "RSI(14) < 30", "--format", "sexpr")
	if err != nil {
		t.Fatalf("parse: %v (stderr %q)", err, errOut)
	}
	if want := "(program (expr (< (call RSI 14) 30)))\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestParseFmtFromStdin(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := runCLI(t, "var x=1;x>2", "parse", "--format", "fmt", "-")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := "var x = 1; x > 2;\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestParseReportsDiagnostics(t *testing.T) {
	t.Chdir(t.TempDir())
	_, errOut, err := runCLI(t, "", "parse", "--expr", "1 +", "--diag-format", "short", "--format", "sexpr")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(errOut, "error SYN2203 <expr>:1:") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestParseFileArgument(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "entry.rule"), "close > EMA(50)\n")
	out, _, err := runCLI(t, "", "parse", "--format", "json", "entry.rule")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if tree["kind"] != "Program" {
		t.Fatalf("root kind = %v", tree["kind"])
	}
}

func TestParseInputConflicts(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := runCLI(t, "", "parse", "--expr", "1", "x.rule"); err == nil {
		t.Fatal("expected an error for --expr with a file")
	}
	if _, _, err := runCLI(t, "", "parse"); err == nil {
		t.Fatal("expected an error without input")
	}
	if _, _, err := runCLI(t, "", "parse", "--expr", "1", "--format", "xml"); err == nil {
		t.Fatal("expected an error for unknown format")
	}
}

func TestManifestStrictSemicolons(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, manifestName), "[parser]\nstrict_semicolons = true\n")

	_, _, err := runCLI(t, "", "parse", "--expr", "x > 1", "--format", "sexpr")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("strict manifest: err = %v", err)
	}
	// флаг перекрывает манифест
	if _, _, err := runCLI(t, "", "parse", "--expr", "x > 1", "--format", "sexpr", "--strict=false"); err != nil {
		t.Fatalf("--strict=false: %v", err)
	}
}

func TestTokenizeJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := runCLI(t, "", "tokenize", "--expr", "a >= 1", "--format", "json")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4 (a >= 1 EOF)", len(toks))
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "rules", "good.rule"), "RSI(14) < 30\n")
	writeFile(t, filepath.Join(dir, "rules", "bad.rule"), "close > \n")
	writeFile(t, filepath.Join(dir, "rules", "momentum.rules.yaml"), `rules:
  - name: trend
    expr: EMA(12) > EMA(26)
  - name: broken
    expr: (1 + 2
`)

	out, errOut, err := runCLI(t, "", "check", "--no-cache", "--ui", "off", "--diag-format", "short", "rules")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(out, "checked 4 formula(s)") {
		t.Fatalf("summary = %q", out)
	}
	if !strings.Contains(errOut, "bad.rule") || !strings.Contains(errOut, "momentum.rules.yaml#broken") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "ok.rule"), "volume > 1000;\n")

	out, _, err := runCLI(t, "", "check", "--no-cache", "--diag-format", "json", ".")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var doc struct {
		Count  int `json:"count"`
		Errors int `json:"errors"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if doc.Count != 0 || doc.Errors != 0 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("json: %v", err)
	}
	if payload.Tool != "formulang" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestFlagValidation(t *testing.T) {
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("readUIMode accepted garbage")
	}
	if _, err := readDiagFormat("xml"); err == nil {
		t.Fatal("readDiagFormat accepted garbage")
	}
	if f, err := readDiagFormat(""); err != nil || f != diagFormatPretty {
		t.Fatalf("readDiagFormat(\"\") = %q, %v", f, err)
	}
	t.Chdir(t.TempDir())
	if _, _, err := runCLI(t, "", "--color", "sometimes", "parse", "--expr", "1"); err == nil {
		t.Fatal("invalid --color accepted")
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	tracePath := filepath.Join(dir, "trace.ndjson")
	if _, _, err := runCLI(t, "", "--trace", tracePath, "parse", "--expr", "1 < 2", "--format", "sexpr"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"scope":"pass","span_id"`) || !strings.Contains(string(data), `"name":"parse"`) {
		t.Fatalf("trace lacks the parse pass span:\n%s", data)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	mem := filepath.Join(dir, "mem.pprof")
	if _, _, err := runCLI(t, "", "--mem-profile", mem, "parse", "--expr", "1", "--format", "sexpr"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info, err := os.Stat(mem); err != nil || info.Size() == 0 {
		t.Fatalf("heap profile missing: %v", err)
	}
}
