package lattice

import (
	"fmt"
	"sort"
	"strings"

	"jstyper/internal/names"
)

var bitNames = []struct {
	bit  Bits
	name string
}{
	{BitUndefined, "undefined"},
	{BitNull, "null"},
	{BitBoolean, "boolean"},
	{BitInteger, "integer"},
	{BitFloat, "float"},
	{BitString, "string"},
	{BitBigInt, "bigint"},
	{BitRegExp, "regexp"},
	{BitIterable, "iterable"},
}

func render(t Type, in *names.Interner) string {
	if t.unknown {
		return "unknown"
	}
	if t.Equal(Nothing) {
		return "nothing"
	}
	if t.Equal(Anything) {
		return "anything"
	}
	var parts []string
	for _, bn := range bitNames {
		if t.bits&bn.bit != 0 {
			parts = append(parts, bn.name)
		}
	}
	if t.shape != nil {
		parts = append(parts, renderShape(*t.shape, in))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " | ")
}

func renderShape(s Shape, in *names.Interner) string {
	var b strings.Builder
	b.WriteString("object(")
	if s.HasGroup {
		fmt.Fprintf(&b, "group=%s ", renderName(s.Group, in))
	}
	if len(s.Properties) > 0 {
		b.WriteString("props=")
		b.WriteString(renderNames(s.Properties, in))
		b.WriteString(" ")
	}
	if len(s.Methods) > 0 {
		b.WriteString("methods=")
		b.WriteString(renderNames(s.Methods, in))
		b.WriteString(" ")
	}
	if s.Call != nil {
		b.WriteString("call ")
	}
	if s.Construct != nil {
		b.WriteString("construct ")
	}
	out := strings.TrimSpace(b.String())
	return out + ")"
}

func renderName(id names.ID, in *names.Interner) string {
	if in != nil {
		if s, ok := in.Lookup(id); ok {
			return s
		}
	}
	return fmt.Sprintf("#%d", id)
}

func renderNames(ids []names.ID, in *names.Interner) string {
	sorted := append([]names.ID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = renderName(id, in)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
