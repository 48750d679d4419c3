package snapshot

import "fmt"

// Mismatch describes one variable whose rendered type differs between two
// snapshots of the same label.
type Mismatch struct {
	Var       uint32
	Name      string
	Want, Got string
	MissingIn string // "want" or "got" when the variable is absent on one side
}

func (m Mismatch) String() string {
	if m.MissingIn != "" {
		return fmt.Sprintf("var %d (%s): missing in %s snapshot", m.Var, m.Name, m.MissingIn)
	}
	return fmt.Sprintf("var %d (%s): want %s, got %s", m.Var, m.Name, m.Want, m.Got)
}

// Diff compares want against got and reports every variable whose rendered
// type changed, plus any variable present in one snapshot but not the
// other. An empty result means the two snapshots agree.
func Diff(want, got *Snapshot) []Mismatch {
	byVar := func(s *Snapshot) map[uint32]VarBinding {
		m := make(map[uint32]VarBinding, len(s.Vars))
		for _, b := range s.Vars {
			m[b.Var] = b
		}
		return m
	}
	wantVars, gotVars := byVar(want), byVar(got)

	var mismatches []Mismatch
	for v, wb := range wantVars {
		gb, ok := gotVars[v]
		if !ok {
			mismatches = append(mismatches, Mismatch{Var: v, Name: wb.Name, MissingIn: "got"})
			continue
		}
		if wb.Type != gb.Type {
			mismatches = append(mismatches, Mismatch{Var: v, Name: wb.Name, Want: wb.Type, Got: gb.Type})
		}
	}
	for v, gb := range gotVars {
		if _, ok := wantVars[v]; !ok {
			mismatches = append(mismatches, Mismatch{Var: v, Name: gb.Name, MissingIn: "want"})
		}
	}
	return mismatches
}
