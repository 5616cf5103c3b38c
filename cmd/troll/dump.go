package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/driver"
	"github.com/forestaa/troll/internal/render"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <elf-file>...",
	Short: "List statically allocated variables of ELF images",
	Long:  `Dump decodes the DWARF debug info of each image and prints one block per global variable: its address, byte size, qualified name and type, with arrays and aggregates expanded element by element.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("json", false, "emit the report as JSON")
	dumpCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
	dumpCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	dumpCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	dumpCmd.Flags().String("filter", "", "keep variables whose qualified name contains this substring")
}

func runDump(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	filter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// Флаги сильнее конфига, конфиг сильнее умолчаний
	if !cmd.Flags().Changed("json") && cfg.Output.Format == "json" {
		asJSON = true
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Analysis.Jobs
	}
	useCache := !noCache
	if !cmd.Flags().Changed("no-cache") {
		useCache = cfg.Analysis.Cache
	}

	mode, err := parseProgressMode(uiFlag)
	if err != nil {
		return err
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

	reqs := make([]driver.Request, 0, len(args))
	for _, path := range args {
		reqs = append(reqs, driver.Request{Path: path, Filter: filter, UseCache: useCache})
	}

	var (
		results []*driver.Result
		runErr  error
	)
	if mode.active() && !quiet {
		results, runErr = runAnalyzeAllWithUI(cmd.Context(), "troll dump", args, reqs, jobs, opts)
	} else {
		results, runErr = driver.AnalyzeAll(cmd.Context(), reqs, jobs, opts)
	}

	failed := runErr != nil
	for _, res := range results {
		if res == nil {
			continue
		}
		if asJSON {
			printDiagnosticsJSON(os.Stderr, res.Diags, maxDiagnostics, quiet)
		} else {
			printDiagnostics(os.Stderr, res.Diags, maxDiagnostics, useColor, quiet)
		}
		if showTimings {
			printTimings(os.Stderr, res.Path, res.Timing)
		}
		if res.Diags.HasErrors() {
			failed = true
		}
	}

	if asJSON {
		if err := writeJSONReports(os.Stdout, results); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		multi := len(results) > 1
		for _, res := range results {
			if res == nil || res.Diags.HasErrors() {
				continue
			}
			if multi {
				fmt.Fprintf(os.Stdout, "%s:\n", res.Path)
			}
			if err := render.Text(os.Stdout, res.Blocks); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
	}

	if failed {
		// Диагностика уже напечатана, cobra ничего не добавляет
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// writeJSONReports emits one report object for a single file and an array
// for several, files that failed fatally are left out.
func writeJSONReports(out io.Writer, results []*driver.Result) error {
	var good []*driver.Result
	for _, res := range results {
		if res != nil && !res.Diags.HasErrors() {
			good = append(good, res)
		}
	}
	if len(good) == 1 {
		return render.JSON(out, good[0].Path, good[0].Blocks)
	}
	reports := make([]render.ReportJSON, 0, len(good))
	for _, res := range good {
		reports = append(reports, render.BuildReport(res.Path, res.Blocks))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
