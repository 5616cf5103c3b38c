package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/forestaa/troll/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <sev>[<CODE>]: <message> (<path>, DIE <offset>)
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s (%s)\n", heading(d.Severity, d.Code, opts.Color), d.Message, d.Primary)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s (%s)\n", note.Msg, note.Loc)
		}
	}
}

func heading(sev diag.Severity, code diag.Code, colored bool) string {
	label := "info"
	c := color.New(color.FgCyan)
	switch sev {
	case diag.SevWarning:
		label = "warning"
		c = color.New(color.FgYellow, color.Bold)
	case diag.SevError:
		label = "error"
		c = color.New(color.FgRed, color.Bold)
	case diag.SevInfo:
	}
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprintf("%s[%s]", label, code.ID())
}
