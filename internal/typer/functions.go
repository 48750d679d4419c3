package typer

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/state"
)

// enterFunction opens a function-like frame for either a standalone
// function declaration or an object-literal method/getter/setter body;
// both share BlockFunction's may-execute merge semantics and are told
// apart only by which concrete BlockMeta the builder passed.
func (t *Typer) enterFunction(meta ir.BlockMeta) {
	switch m := meta.(type) {
	case ir.FunctionMeta:
		bindParams(t, m.Signature, m.ParamVars)
		t.functions = append(t.functions, &functionFrame{
			signature: m.Signature,
			thisType:  lattice.Object(nil, nil, nil),
		})
	case ir.ObjectMemberMeta:
		obj := t.innermostObject()
		if obj == nil {
			panic("typer: object-literal member body entered with no open object literal")
		}
		if m.Accessor == ir.AccessorNone {
			obj.typ = obj.typ.WithMethod(m.Name)
		}
		bindParams(t, m.Signature, m.ParamVars)
		t.functions = append(t.functions, &functionFrame{
			signature: m.Signature,
			thisType:  obj.typ,
		})
	default:
		panic("typer: function block entered without FunctionMeta or ObjectMemberMeta")
	}
}

// leaveFunction folds free-variable writes back as may-execute (the
// function may never run, or may run many times), then assigns the
// function's own variable its post-body type, or — for an object-literal
// accessor — records its name as a property on the enclosing literal now
// that the body has seen the pre-declaration shape.
func (t *Typer) leaveFunction(popped *state.Frame) {
	t.stack.MergeMayExecute(popped)
	t.functions = t.functions[:len(t.functions)-1]

	switch m := popped.Meta.(type) {
	case ir.FunctionMeta:
		if m.Output == ir.NoVar {
			return
		}
		if m.Kind == ir.FunctionPlain {
			t.set(m.Output, lattice.FunctionAndConstructor(m.Signature))
		} else {
			t.set(m.Output, lattice.Function(m.Signature))
		}
	case ir.ObjectMemberMeta:
		if m.Accessor != ir.AccessorNone {
			obj := t.innermostObject()
			obj.typ = obj.typ.WithProperty(m.Name)
		}
	}
}

func bindParams(t *Typer, sig lattice.Signature, paramVars []ir.VarID) {
	for i, v := range paramVars {
		if v == ir.NoVar || i >= len(sig.Params) {
			continue
		}
		t.set(v, sig.Params[i].BoundType())
	}
}
