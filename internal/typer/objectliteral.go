package typer

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/state"
)

// objectAccum tracks one open object literal's incrementally built
// shape, symmetrical to classFrame but with a single accumulator
// instead of separate instance/static shapes.
type objectAccum struct {
	typ lattice.Type
}

func (t *Typer) enterObjectLiteral(meta ir.BlockMeta) {
	t.objects = append(t.objects, &objectAccum{typ: lattice.Object(nil, nil, nil)})
}

func (t *Typer) leaveObjectLiteral(popped *state.Frame) {
	olm, _ := popped.Meta.(ir.ObjectLiteralMeta)
	t.stack.MergeMayExecute(popped)

	obj := t.objects[len(t.objects)-1]
	t.objects = t.objects[:len(t.objects)-1]

	if olm.Output == ir.NoVar {
		return
	}
	t.set(olm.Output, obj.typ)
}

// analyzeAddProperty implements addProperty(name, as: V): appends name
// to the innermost open object literal's accumulated shape. V's own
// type is irrelevant to the shape.
func (t *Typer) analyzeAddProperty(op ir.Op) {
	obj := t.innermostObject()
	if obj == nil {
		return
	}
	obj.typ = obj.typ.WithProperty(op.Name)
}
