package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/config"
	"github.com/forestaa/troll/internal/trace"
)

// setupTracing builds a tracer from --trace and --trace-file, falling back
// to the [trace] section of troll.toml. The returned cleanup flushes and
// closes the tracer.
func setupTracing(cmd *cobra.Command, cfg config.Config) (trace.Tracer, func(), error) {
	root := cmd.Root()

	levelStr, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if levelStr == "" {
		levelStr = cfg.Trace.Level
	}
	path, err := root.PersistentFlags().GetString("trace-file")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-file flag: %w", err)
	}
	if path == "" {
		path = cfg.Trace.Path
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: path})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}
