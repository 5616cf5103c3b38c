package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the troll disk cache",
	Long:  "Remove every cached report from the troll cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenReportCache("troll")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.Purge(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	fmt.Fprintln(os.Stdout, "cache removed")
	return nil
}
