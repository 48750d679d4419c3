package diag

// Note attaches secondary context to a Diagnostic.
type Note struct {
	At  Location
	Msg string
}

// Diagnostic is one reported problem: a config parse failure, a
// malformed operation script, or a recovered Typer assertion panic.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}
