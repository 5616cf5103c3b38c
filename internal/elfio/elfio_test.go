package elfio_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/forestaa/troll/internal/elfio"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := elfio.Load(filepath.Join(t.TempDir(), "nope"))
	var le *elfio.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Kind != elfio.LoadErrRead {
		t.Errorf("kind = %v, want LoadErrRead", le.Kind)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadNotElf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(path, []byte("just text, no magic\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := elfio.Load(path)
	var le *elfio.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Kind != elfio.LoadErrFormat {
		t.Errorf("kind = %v, want LoadErrFormat", le.Kind)
	}
	if le.Path != path {
		t.Errorf("path = %q, want %q", le.Path, path)
	}
}
