package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/forestaa/troll/internal/config"
	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/diagfmt"
)

// printDiagnostics renders one bag: sorted, capped at max entries, info
// diagnostics and notes dropped in quiet mode.
func printDiagnostics(out io.Writer, bag *diag.Bag, max int, useColor, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()

	items := bag.Items()
	shown := diag.NewBag(len(items))
	dropped := 0
	for _, d := range items {
		if quiet && d.Severity < diag.SevWarning {
			continue
		}
		if max > 0 && shown.Len() >= max {
			dropped++
			continue
		}
		shown.Add(d)
	}
	diagfmt.Pretty(out, shown, diagfmt.PrettyOpts{Color: useColor, ShowNotes: !quiet})
	if dropped > 0 {
		fmt.Fprintf(out, "... and %d more diagnostics\n", dropped)
	}
}

// printDiagnosticsJSON is the machine-readable counterpart used by --json
// runs, one envelope per file on the same stream.
func printDiagnosticsJSON(out io.Writer, bag *diag.Bag, max int, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()

	items := bag.Items()
	shown := diag.NewBag(len(items))
	for _, d := range items {
		if quiet && d.Severity < diag.SevWarning {
			continue
		}
		shown.Add(d)
	}
	if shown.Len() == 0 {
		return
	}
	if err := diagfmt.JSON(out, shown, diagfmt.JSONOpts{Max: max, IncludeNotes: !quiet}); err != nil {
		fmt.Fprintf(out, "failed to encode diagnostics: %v\n", err)
	}
}

// resolveColor merges the --color flag with the config file and decides
// against the given stream for auto.
func resolveColor(cmd *cobra.Command, cfg config.Config, stream *os.File) (bool, error) {
	flags := cmd.Root().PersistentFlags()
	value, err := flags.GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && cfg.Output.Color != "" {
		value = cfg.Output.Color
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(stream), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
