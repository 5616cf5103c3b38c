// Package config loads troll.toml, the optional per-project configuration.
//
// Файл ищется вверх по дереву каталогов от стартовой точки, как это делают
// системы сборки. Все поля имеют умолчания, поэтому отсутствие файла не
// ошибка. Неизвестные ключи отвергаются, чтобы опечатка не превращалась в
// молча проигнорированную настройку.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/forestaa/troll/internal/trace"
)

// FileName is what Find looks for.
const FileName = "troll.toml"

// Config mirrors troll.toml.
type Config struct {
	Output   Output   `toml:"output"`
	Analysis Analysis `toml:"analysis"`
	Trace    Trace    `toml:"trace"`
}

// Output controls the report form.
type Output struct {
	Format string `toml:"format"` // table | json
	Color  string `toml:"color"`  // auto | on | off
}

// Analysis controls how files are processed.
type Analysis struct {
	Jobs  int  `toml:"jobs"` // 0 берёт GOMAXPROCS
	Cache bool `toml:"cache"`
}

// Trace controls the execution tracer.
type Trace struct {
	Level string `toml:"level"` // off | phase | detail | debug
	Path  string `toml:"path"`  // пустой или "-" пишет в stderr
}

// Default returns the configuration used when no troll.toml exists.
func Default() Config {
	return Config{
		Output:   Output{Format: "table", Color: "auto"},
		Analysis: Analysis{Jobs: 0, Cache: true},
		Trace:    Trace{Level: "off"},
	}
}

// Find walks up from startDir looking for troll.toml. It reports the path
// and whether one was found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates one file. Fields missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, keys[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover combines Find and Load. Without a file it returns defaults and
// an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func (c Config) validate() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("[output].format must be %q or %q, got %q", "table", "json", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be %q, %q or %q, got %q", "auto", "on", "off", c.Output.Color)
	}
	if c.Analysis.Jobs < 0 {
		return fmt.Errorf("[analysis].jobs must not be negative, got %d", c.Analysis.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	return nil
}
