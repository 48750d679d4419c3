package diag

import "fmt"

// Location pinpoints where a diagnostic applies. Source names the
// artifact (a TOML config path; the script decoder reports with
// NoLocation, so its diagnostics carry no source);
// Line and Column are 1-based and zero when not meaningful (e.g. an
// op-stream diagnostic that only has an operation index).
type Location struct {
	Source string
	Line   uint32
	Column uint32
	Op     int // operation index within the script, -1 if not applicable
}

func (l Location) String() string {
	if l.Op >= 0 {
		return fmt.Sprintf("%s:op#%d", l.Source, l.Op)
	}
	if l.Line == 0 {
		return l.Source
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

// NoLocation has no source, line, or operation index (Op is -1), and
// renders as an empty string.
var NoLocation = Location{Op: -1}
