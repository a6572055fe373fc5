package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), "[parser]\nmax_depth = 16\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	manifest, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	if manifest.Root != root {
		t.Fatalf("root = %q, want %q", manifest.Root, root)
	}
	if manifest.Config.Parser.MaxDepth != 16 {
		t.Fatalf("max_depth = %d", manifest.Config.Parser.MaxDepth)
	}
	if manifest.Config.Check.Cache != nil {
		t.Fatal("cache must stay unset when the key is absent")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, manifestName)
	writeFile(t, path, `# project defaults
[parser]
max_depth = 32
strict_semicolons = true

[check]
max_diagnostics = 0
jobs = 4
cache = false
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if !cfg.Parser.StrictSemicolons || cfg.Parser.MaxDepth != 32 {
		t.Fatalf("parser section = %+v", cfg.Parser)
	}
	if cfg.Check.MaxDiagnostics == nil || *cfg.Check.MaxDiagnostics != 0 {
		t.Fatalf("max_diagnostics = %v", cfg.Check.MaxDiagnostics)
	}
	if cfg.Check.Jobs != 4 || cfg.Check.Cache == nil || *cfg.Check.Cache {
		t.Fatalf("check section = %+v", cfg.Check)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[parser]\nmax_dept = 3\n", "unknown keys: parser.max_dept"},
		{"bad depth", "[parser]\nmax_depth = 0\n", "max_depth must be positive"},
		{"negative jobs", "[check]\njobs = -1\n", "jobs must not be negative"},
		{"negative max", "[check]\nmax_diagnostics = -5\n", "max_diagnostics must not be negative"},
		{"syntax", "[parser\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), manifestName)
			writeFile(t, path, tc.content)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
}
