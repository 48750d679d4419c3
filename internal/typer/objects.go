package typer

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
)

func (t *Typer) analyzeCreateObject(op ir.Op) lattice.Type {
	return lattice.Object(op.Names, nil, nil)
}

// analyzeSetProperty implements setProperty(name, of: O, to: V): O's type
// gains name in its properties. inputs is [O, V].
func (t *Typer) analyzeSetProperty(op ir.Op, inputs []ir.VarID) {
	if len(inputs) < 1 {
		return
	}
	object := inputs[0]
	t.set(object, t.get(object).WithProperty(op.Name))
}

// analyzeDeleteProperty implements deleteProperty(name, of: O). inputs
// is [O].
func (t *Typer) analyzeDeleteProperty(op ir.Op, inputs []ir.VarID) {
	if len(inputs) < 1 {
		return
	}
	object := inputs[0]
	t.set(object, t.get(object).WithoutProperty(op.Name))
}

// analyzeGetProperty implements getProperty(name, of: O). inputs is [O].
func (t *Typer) analyzeGetProperty(op ir.Op, inputs []ir.VarID) lattice.Type {
	object := t.operand(inputs, 0)
	group, hasGroup := object.Group()
	return t.env.TypeOfProperty(op.Name, group, hasGroup)
}

// analyzeCallMethod implements callMethod(m, on: O, ...). inputs[0] is O;
// remaining inputs are call arguments, irrelevant to the return type.
func (t *Typer) analyzeCallMethod(op ir.Op, inputs []ir.VarID) lattice.Type {
	receiver := t.operand(inputs, 0)
	group, hasGroup := receiver.Group()
	sig, ok := t.env.SignatureOfMethod(op.Name, group, hasGroup)
	if !ok {
		return lattice.Unknown
	}
	return sig.Return
}

// analyzeCallFunction implements callFunction(F, ...). inputs[0] is F.
func (t *Typer) analyzeCallFunction(inputs []ir.VarID) lattice.Type {
	fn := t.operand(inputs, 0)
	sig, ok := fn.CallSignature()
	if !ok {
		return lattice.Unknown
	}
	return sig.Return
}

// analyzeConstruct implements construct(C, ...). inputs[0] is C.
func (t *Typer) analyzeConstruct(inputs []ir.VarID) lattice.Type {
	ctor := t.operand(inputs, 0)
	sig, ok := ctor.ConstructSignature()
	if !ok {
		return lattice.Object(nil, nil, nil)
	}
	return sig.Return
}

// analyzeDestruct implements destruct(O, selecting: [p1..pk],
// hasRestElement). inputs is [O]; outputs has one entry per selected
// property, plus a trailing rest-element output when HasRestElement.
func (t *Typer) analyzeDestruct(op ir.Op, inputs []ir.VarID, outputs []ir.VarID) {
	object := t.operand(inputs, 0)
	group, hasGroup := object.Group()

	n := len(op.Names)
	for i, name := range op.Names {
		if i >= len(outputs) {
			break
		}
		t.set(outputs[i], t.env.TypeOfProperty(name, group, hasGroup))
	}
	if op.HasRestElement && len(outputs) > n {
		t.set(outputs[n], lattice.Object(nil, nil, nil))
	}
}
