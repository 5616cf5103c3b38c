package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/forestaa/troll/internal/diag"
)

func TestPrettyPlain(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.TypeUnresolvedRef,
		diag.Loc{File: "a.out", Offset: 0x2a},
		"type at offset 0x77 not found",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{})

	want := "warning[TYPE3001]: type at offset 0x77 not found (a.out, DIE 0x2a)\n"
	if buf.String() != want {
		t.Fatalf("Pretty output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag := diag.NewBag(10)
	d := diag.NewError(diag.DwarfOffsetClash, diag.Loc{File: "a.out", Offset: 0x40}, "duplicate DIE offset").
		WithNote(diag.Loc{File: "a.out", Offset: 0x10}, "first entry here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{ShowNotes: true})

	out := buf.String()
	if !strings.Contains(out, "error[DW2002]: duplicate DIE offset (a.out, DIE 0x40)") {
		t.Fatalf("missing primary line in output:\n%s", out)
	}
	if !strings.Contains(out, "  note: first entry here (a.out, DIE 0x10)") {
		t.Fatalf("missing note line in output:\n%s", out)
	}

	// без ShowNotes заметки не печатаются
	buf.Reset()
	Pretty(&buf, bag, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.VarNoName, diag.Loc{File: "a.out", Offset: 1}, "m"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, PrettyOpts{Color: false})
	Pretty(&colored, bag, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output must not contain escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output must contain escape codes: %q", colored.String())
	}
}
