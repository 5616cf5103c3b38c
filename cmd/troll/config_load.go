package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/config"
)

// resolveConfig loads troll.toml: the --config path when given, otherwise
// the nearest file up from the working directory, otherwise defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}
