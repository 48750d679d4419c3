package diag

func New(sev Severity, code Code, at Location, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: at, Message: msg}
}

func NewError(code Code, at Location, msg string) Diagnostic {
	return New(SevError, code, at, msg)
}

func NewWarning(code Code, at Location, msg string) Diagnostic {
	return New(SevWarning, code, at, msg)
}

func (d Diagnostic) WithNote(at Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{At: at, Msg: msg})
	return d
}
