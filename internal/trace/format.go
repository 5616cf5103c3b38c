package trace

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Format selects the wire encoding of trace events.
type Format uint8

const (
	FormatText   Format = iota // человекочитаемые строки
	FormatNDJSON               // по событию на строку, для jq
)

const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// eventJSON is the NDJSON wire form of Event.
type eventJSON struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// FormatEvent encodes one event, newline included.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		data, _ := json.Marshal(eventJSON{
			Time:     ev.Time.Format(timeLayout),
			Seq:      ev.Seq,
			Kind:     ev.Kind.String(),
			Scope:    ev.Scope.String(),
			SpanID:   ev.SpanID,
			ParentID: ev.ParentID,
			GID:      ev.GID,
			Name:     ev.Name,
			Detail:   ev.Detail,
			Extra:    ev.Extra,
		})
		return append(data, '\n')
	}
	return formatText(ev)
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
}

// formatText renders "[   seq] → name (detail) {k=v}". Events under a
// parent span are indented one step, extra keys come out sorted.
func formatText(ev *Event) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "[%6d] ", ev.Seq)
	if ev.ParentID > 0 {
		b.WriteString("  ")
	}
	if mark, ok := kindMarks[ev.Kind]; ok {
		b.WriteString(mark)
		b.WriteString(" ")
	}
	b.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&b, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, ev.Extra[k])
		}
		b.WriteString("}")
	}
	b.WriteString("\n")
	return []byte(b.String())
}
