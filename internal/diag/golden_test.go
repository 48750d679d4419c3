package diag

import "testing"

func TestFormatDiagnosticsRendersNotes(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     ScriptMalformed,
			Message:  "first line\nsecond",
			Primary:  Location{Source: "sample.json", Line: 1, Column: 1, Op: -1},
			Notes: []Note{
				{At: Location{Source: "sample.json", Line: 2, Column: 1, Op: -1}, Msg: "note line"},
			},
		},
	}

	want := "error SCR2001 sample.json:1:1 first line second\n" +
		"note SCR2001 sample.json:2:1 note line"

	if got := FormatDiagnostics(diags, true); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatDiagnosticsSortsBySourceThenPosition(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SevError, Code: ScriptMalformed, Message: "b", Primary: Location{Source: "b.json", Line: 1, Op: -1}},
		{Severity: SevError, Code: ScriptMalformed, Message: "a", Primary: Location{Source: "a.json", Line: 1, Op: -1}},
	}
	want := "error SCR2001 a.json:1:0 a\nerror SCR2001 b.json:1:0 b"
	if got := FormatDiagnostics(diags, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
