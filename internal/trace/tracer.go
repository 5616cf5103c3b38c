package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives the events the decoding pipeline emits. Emit must be
// safe for concurrent use, files are analyzed in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config describes the tracer to build.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // takes priority over OutputPath when set
	OutputPath string    // "" or "-" means stderr
}

// New builds a Tracer from cfg. LevelOff yields the Nop tracer without
// touching the output path.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatText && strings.HasSuffix(cfg.OutputPath, ".ndjson") {
		format = FormatNDJSON
	}

	w := cfg.Output
	if w == nil {
		switch cfg.OutputPath {
		case "", "-":
			w = os.Stderr
		default:
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
		}
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}
