package main

import (
	"fmt"
	"io"

	"github.com/forestaa/troll/internal/observ"
)

// printTimings пишет длительности фаз одного файла, по строке на фазу.
func printTimings(out io.Writer, path string, report observ.Report) {
	if out == nil {
		return
	}
	if path != "" {
		fmt.Fprintf(out, "%s:\n", path)
	}
	for _, ph := range report.Phases {
		if ph.Note != "" {
			fmt.Fprintf(out, "  %-8s %8.2f ms  %s\n", ph.Name, ph.DurationMS, ph.Note)
		} else {
			fmt.Fprintf(out, "  %-8s %8.2f ms\n", ph.Name, ph.DurationMS)
		}
	}
	fmt.Fprintf(out, "  %-8s %8.2f ms\n", "total", report.TotalMS)
}
