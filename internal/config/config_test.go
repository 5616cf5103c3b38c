package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forestaa/troll/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Output.Format != "table" || cfg.Output.Color != "auto" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.Analysis.Jobs != 0 || !cfg.Analysis.Cache {
		t.Errorf("unexpected analysis defaults: %+v", cfg.Analysis)
	}
	if cfg.Trace.Level != "off" {
		t.Errorf("unexpected trace defaults: %+v", cfg.Trace)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[output]
format = "json"
color = "off"

[analysis]
jobs = 4
cache = false

[trace]
level = "detail"
path = "trace.ndjson"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "off" {
		t.Errorf("unexpected output: %+v", cfg.Output)
	}
	if cfg.Analysis.Jobs != 4 || cfg.Analysis.Cache {
		t.Errorf("unexpected analysis: %+v", cfg.Analysis)
	}
	if cfg.Trace.Level != "detail" || cfg.Trace.Path != "trace.ndjson" {
		t.Errorf("unexpected trace: %+v", cfg.Trace)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[output]
format = "json"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("color = %q, want the default auto", cfg.Output.Color)
	}
	if !cfg.Analysis.Cache {
		t.Error("cache should keep its default true")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[output]
formmat = "json"
`)
	_, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"bad color", "[output]\ncolor = \"yes\"\n", "[output].color"},
		{"negative jobs", "[analysis]\njobs = -1\n", "[analysis].jobs"},
		{"bad trace level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nformat = \"table\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := config.Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("expected to find troll.toml above the start directory")
	}
	if path != filepath.Join(root, config.FileName) {
		t.Errorf("path = %q, want %q", path, filepath.Join(root, config.FileName))
	}
}

func TestFindMiss(t *testing.T) {
	_, ok, err := config.Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Error("expected no troll.toml in an empty tree")
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, path, err := config.Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
