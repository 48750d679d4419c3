package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Reference Environment / TOML config (1000-1999).
	EnvInfo                     Code = 1000
	EnvConfigParseError         Code = 1001
	EnvDuplicateBuiltin         Code = 1002
	EnvConflictingGroupProperty Code = 1003
	EnvConflictingGroupMethod   Code = 1004
	EnvUnresolvedTypeRef        Code = 1005

	// IR operation script (2000-2999): the CLI's own script decoder, not
	// the Typer itself (the Typer never reports diagnostics, per §7).
	ScriptInfo         Code = 2000
	ScriptMalformed    Code = 2001
	ScriptUnknownOp    Code = 2002
	ScriptUnknownBlock Code = 2003

	// Typer driver assertion failures (3000-3999): surfaced only by the
	// CLI wrapping a recovered panic for display, since the Typer itself
	// panics rather than returning an error (§7).
	TyperInfo                   Code = 3000
	TyperBlockNestingViolation  Code = 3001
	TyperBlockMetaKindMismatch  Code = 3002

	// Observability (6000-6999).
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	EnvInfo:                     "Environment configuration information",
	EnvConfigParseError:         "Malformed environment configuration file",
	EnvDuplicateBuiltin:         "Duplicate builtin declaration",
	EnvConflictingGroupProperty: "Conflicting group property declaration",
	EnvConflictingGroupMethod:   "Conflicting group method declaration",
	EnvUnresolvedTypeRef:        "Unresolved type reference in configuration",
	ScriptInfo:                  "Operation script information",
	ScriptMalformed:             "Malformed operation script",
	ScriptUnknownOp:             "Unrecognized operation kind in script",
	ScriptUnknownBlock:          "Unrecognized block kind in script",
	TyperInfo:                   "Typer driver information",
	TyperBlockNestingViolation:  "Block entered and left out of order",
	TyperBlockMetaKindMismatch:  "Block metadata does not match its block kind",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ENV%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
