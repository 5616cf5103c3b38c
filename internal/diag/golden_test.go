package diag

import (
	"testing"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     DwarfMalformed,
			Message:  "first line\nsecond",
			Primary:  Loc{File: "testdata/a.out", Offset: 0x0b},
			Notes: []Note{
				{Loc: Loc{File: "testdata/a.out", Offset: 0x2a}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     TypeUnresolvedRef,
			Message:  "another",
			Primary:  Loc{File: "testdata/a.out", Offset: 0x2a},
		},
	}

	expected := "error DW2001 testdata/a.out:0xb first line second\n" +
		"note DW2001 testdata/a.out:0x2a note line\n" +
		"warning TYPE3001 testdata/a.out:0x2a another"

	if got := FormatGoldenDiagnostics(diags, true); got != expected {
		t.Fatalf("golden mismatch:\n--- want ---\n%s\n--- got ---\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsSkipsNotes(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     VarNoName,
			Message:  "variable entry has no name",
			Primary:  Loc{File: "b.out", Offset: 0x91},
			Notes: []Note{
				{Loc: Loc{File: "b.out", Offset: 0x10}, Msg: "declared here"},
			},
		},
	}

	expected := "warning VAR4001 b.out:0x91 variable entry has no name"
	if got := FormatGoldenDiagnostics(diags, false); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, true); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
