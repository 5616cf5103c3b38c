package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/prof"
)

// setupProfiling inspects the persistent profiling flags and starts the
// matching profilers. The returned cleanup function is safe to call
// multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	sess, err := prof.Start(cpuProfile, memProfile, tracePath)
	if err != nil {
		return nil, err
	}
	cleanup := func() {
		if err := sess.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		}
	}
	return cleanup, nil
}
