package diag

import (
	"fmt"
	"sort"
	"strings"
)

// row is one line of the golden rendering.
type row struct {
	sev    string
	code   string
	path   string
	offset uint64
	msg    string
}

func (r row) format() string {
	return fmt.Sprintf("%s %s %s:0x%x %s", r.sev, r.code, r.path, r.offset, r.msg)
}

// FormatGoldenDiagnostics renders diagnostics one line per entry, sorted
// deterministically so tests can pin expected output down to the byte.
// Notes become their own "note" lines when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, includeNotes bool) string {
	var rows []row
	for i := range diags {
		d := &diags[i]
		rows = append(rows, row{
			sev:    strings.ToLower(d.Severity.String()),
			code:   d.Code.ID(),
			path:   d.Primary.File,
			offset: d.Primary.Offset,
			msg:    flattenMessage(d.Message),
		})
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rows = append(rows, row{
				sev:    "note",
				code:   d.Code.ID(),
				path:   n.Loc.File,
				offset: n.Loc.Offset,
				msg:    flattenMessage(n.Msg),
			})
		}
	}
	if len(rows) == 0 {
		return ""
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i], rows[j]
		if ri.path != rj.path {
			return ri.path < rj.path
		}
		if ri.offset != rj.offset {
			return ri.offset < rj.offset
		}
		if ri.sev != rj.sev {
			return ri.sev < rj.sev
		}
		if ri.code != rj.code {
			return ri.code < rj.code
		}
		return ri.msg < rj.msg
	})

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.format()
	}
	return strings.Join(lines, "\n")
}

// flattenMessage collapses all whitespace runs, newlines included, into
// single spaces so every diagnostic stays on one line.
func flattenMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
