package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for CLI output and golden-file comparisons.
// Diagnostics are sorted deterministically by source, position, severity,
// and code before rendering.
func FormatDiagnostics(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	sorted := append([]Diagnostic(nil), diags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Primary.Source != dj.Primary.Source {
			return di.Primary.Source < dj.Primary.Source
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if di.Primary.Column != dj.Primary.Column {
			return di.Primary.Column < dj.Primary.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range sorted {
		fmt.Fprintf(&b, "%s %s %s %s", severityLabel(d.Severity), d.Code.ID(), d.Primary, sanitizeMessage(d.Message))
		if includeNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), note.At, sanitizeMessage(note.Msg))
			}
		}
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
