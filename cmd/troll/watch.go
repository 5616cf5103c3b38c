package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/driver"
	"github.com/forestaa/troll/internal/render"
	"github.com/forestaa/troll/internal/trace"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <elf-file>...",
	Short: "Re-run dump whenever a watched image changes",
	Long:  `Watch prints the variable report of each image and reprints it every time the file is rebuilt. Stop with ctrl+c.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
	watchCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	watchCmd.Flags().String("filter", "", "keep variables whose qualified name contains this substring")
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "quiet period after a change before re-reading")
}

func runWatch(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	filter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
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
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Analysis.Jobs
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

	opts := driver.Options{}
	if useCache {
		cache, err := driver.OpenReportCache("troll")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = trace.WithTracer(ctx, tracer)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Следим за каталогами, а не за самими файлами: линковщик обычно
	// пишет во временный файл и подменяет цель через rename.
	reqs := make([]driver.Request, 0, len(args))
	targets := make(map[string]struct{}, len(args))
	dirs := make(map[string]struct{})
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", arg, err)
		}
		reqs = append(reqs, driver.Request{Path: arg, Filter: filter, UseCache: useCache})
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	runOnce := func() {
		results, _ := driver.AnalyzeAll(ctx, reqs, jobs, opts)
		fmt.Fprintf(os.Stdout, "[%s]\n", time.Now().Format("15:04:05"))
		multi := len(results) > 1
		for _, res := range results {
			if res == nil {
				continue
			}
			if showTimings {
				driver.AppendTimings(res.Diags, res.Path, res.Timing)
			}
			printDiagnostics(os.Stderr, res.Diags, maxDiagnostics, useColor, quiet)
			if res.Diags.HasErrors() {
				continue
			}
			if multi {
				fmt.Fprintf(os.Stdout, "%s:\n", res.Path)
			}
			if err := render.Text(os.Stdout, res.Blocks); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			}
		}
	}

	runOnce()

	var timer *time.Timer
	var timerC <-chan time.Time
	arm := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, mine := targets[filepath.Clean(ev.Name)]; !mine {
				continue
			}
			// Remove и Rename цели пропускаем: файл исчез, дождёмся
			// Create от пересборки
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			arm()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-timerC:
			runOnce()
		}
	}
}
