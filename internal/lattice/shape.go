package lattice

import (
	"sort"

	"jstyper/internal/names"
)

// Shape is the structural description of an object value: its named
// properties and methods, an optional nominal group, and optional call /
// construct signatures. Presence of Call means "callable as a function";
// presence of Construct means "callable with new".
type Shape struct {
	HasGroup   bool
	Group      names.ID
	Properties []names.ID // sorted, de-duplicated
	Methods    []names.ID // sorted, de-duplicated
	Call       *Signature
	Construct  *Signature
}

// sortedSet returns a sorted, de-duplicated copy of ids.
func sortedSet(ids []names.ID) []names.ID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]names.ID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i == 0 || out[i-1] != id {
			out[n] = id
			n++
		}
	}
	return out[:n]
}

func containsID(set []names.ID, id names.ID) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

// containsAll reports whether superset contains every id in subset.
func containsAll(superset, subset []names.ID) bool {
	for _, id := range subset {
		if !containsID(superset, id) {
			return false
		}
	}
	return true
}

func unionSet(a, b []names.ID) []names.ID {
	return sortedSet(append(append([]names.ID{}, a...), b...))
}

func intersectSet(a, b []names.ID) []names.ID {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var out []names.ID
	for _, id := range a {
		if containsID(b, id) {
			out = append(out, id)
		}
	}
	return sortedSet(out)
}

func removeID(set []names.ID, id names.ID) []names.ID {
	if !containsID(set, id) {
		return set
	}
	out := make([]names.ID, 0, len(set))
	for _, s := range set {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

func signatureEqual(a, b *Signature) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func shapesEqual(a, b *Shape) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.HasGroup != b.HasGroup || (a.HasGroup && a.Group != b.Group) {
		return false
	}
	if len(a.Properties) != len(b.Properties) || len(a.Methods) != len(b.Methods) {
		return false
	}
	for i := range a.Properties {
		if a.Properties[i] != b.Properties[i] {
			return false
		}
	}
	for i := range a.Methods {
		if a.Methods[i] != b.Methods[i] {
			return false
		}
	}
	return signatureEqual(a.Call, b.Call) && signatureEqual(a.Construct, b.Construct)
}

// shapeIsSubtype reports whether shape a is a structural subtype of shape
// b: a has at least b's properties/methods, a's group matches b's when b
// names one, and a's signatures equal b's when b requires one. This is the
// object-shape half of Type.Is. Callers must pass non-nil shapes.
func shapeIsSubtype(a, b *Shape) bool {
	if !containsAll(a.Properties, b.Properties) {
		return false
	}
	if !containsAll(a.Methods, b.Methods) {
		return false
	}
	if b.HasGroup && (!a.HasGroup || a.Group != b.Group) {
		return false
	}
	if b.Call != nil && !signatureEqual(a.Call, b.Call) {
		return false
	}
	if b.Construct != nil && !signatureEqual(a.Construct, b.Construct) {
		return false
	}
	return true
}
