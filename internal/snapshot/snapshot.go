package snapshot

import (
	"sort"

	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// schemaVersion guards against decoding a Snapshot written by an
// incompatible future format. Bump it whenever the Snapshot shape changes.
const schemaVersion uint16 = 1

// VarBinding is one variable's rendered type at capture time.
type VarBinding struct {
	Var  uint32
	Name string // empty unless the builder that produced Var gave it a label
	Type string
}

// Snapshot is a captured, comparable record of a Typer run's variable
// bindings: a label identifying the script the trace came from, and the
// rendered type of every variable the caller asked to pin down.
type Snapshot struct {
	Schema uint16
	Label  string
	Vars   []VarBinding
}

// Capture renders every variable in types against in and returns a
// Snapshot sorted by variable ID, so two captures of the same script
// always compare equal regardless of map iteration order.
func Capture(label string, types map[ir.VarID]lattice.Type, in *names.Interner) *Snapshot {
	return CaptureNamed(label, types, nil, in)
}

// CaptureNamed is Capture with an optional Var->label map (e.g. a
// builder's own variable names) attached to each binding for readability.
func CaptureNamed(label string, types map[ir.VarID]lattice.Type, varNames map[ir.VarID]string, in *names.Interner) *Snapshot {
	vars := make([]VarBinding, 0, len(types))
	for v, ty := range types {
		vars = append(vars, VarBinding{
			Var:  uint32(v),
			Name: varNames[v],
			Type: ty.Render(in),
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Var < vars[j].Var })
	return &Snapshot{Schema: schemaVersion, Label: label, Vars: vars}
}
