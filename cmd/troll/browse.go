package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/driver"
	"github.com/forestaa/troll/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [flags] <elf-file>",
	Short: "Browse variables of an ELF image interactively",
	Long:  `Browse opens the variable report in a scrollable viewer with an incremental name filter. Type to narrow the list, esc quits.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse needs a terminal, use troll dump for piped output")
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	useCache := !noCache
	if !cmd.Flags().Changed("no-cache") {
		useCache = cfg.Analysis.Cache
	}
	useColor, err := resolveColor(cmd, cfg, os.Stderr)
	if err != nil {
		return err
	}

	tracer, traceCleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer traceCleanup()
	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	opts := driver.Options{Tracer: tracer}
	if useCache {
		cache, err := driver.OpenReportCache("troll")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	res, runErr := driver.Analyze(cmd.Context(), driver.Request{Path: path, UseCache: useCache}, opts)
	if runErr != nil {
		printDiagnostics(os.Stderr, res.Diags, maxDiagnostics, useColor, quiet)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}

	program := tea.NewProgram(ui.NewBrowseModel(path, res.Blocks),
		tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}

	// предупреждения печатаем после выхода из альтернативного экрана,
	// иначе их сотрёт
	printDiagnostics(os.Stderr, res.Diags, maxDiagnostics, useColor, quiet)
	return nil
}
