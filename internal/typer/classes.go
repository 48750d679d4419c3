package typer

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/state"
)

// enterClassBody opens a class declaration: instance and static shapes
// both start as .object(), and a superclass (if any) seeds the
// inheritance bindings queried via CurrentSuperType and
// CurrentSuperConstructorType.
func (t *Typer) enterClassBody(meta ir.BlockMeta) {
	cb, _ := meta.(ir.ClassBodyMeta)
	cf := &classFrame{
		instanceType: lattice.Object(nil, nil, nil),
		staticType:   lattice.Object(nil, nil, nil),
	}
	if cb.Superclass != ir.NoVar {
		super := t.get(cb.Superclass)
		cf.hasSuper = true
		cf.superClassType = super
		if sig, ok := super.ConstructSignature(); ok {
			cf.superInstanceType = sig.Return
		} else {
			cf.superInstanceType = lattice.Object(nil, nil, nil)
		}
	}
	t.classes = append(t.classes, cf)
}

// leaveClassBody assembles the class's own value: the accumulated
// static shape combined with a construct signature whose return type is
// always the accumulated instance shape, whether the class declared an
// explicit constructor or not.
func (t *Typer) leaveClassBody(popped *state.Frame) {
	cb, _ := popped.Meta.(ir.ClassBodyMeta)
	t.stack.MergeMayExecute(popped)

	cf := t.classes[len(t.classes)-1]
	t.classes = t.classes[:len(t.classes)-1]

	if cb.Output == ir.NoVar {
		return
	}
	ctorSig := cf.ctorSig
	ctorSig.Return = cf.instanceType
	t.set(cb.Output, cf.staticType.WithConstruct(ctorSig))
}

// enterClassMember opens one member body: a plain instance/static
// method's name is added to the accumulating shape immediately (so the
// body can reference itself via `this`); a getter, setter, or private
// method's name is withheld until the body closes (or forever, for
// private members), per the declaration-order visibility rule.
func (t *Typer) enterClassMember(kind ir.BlockKind, meta ir.BlockMeta) {
	cm, _ := meta.(ir.ClassMemberMeta)
	cf := t.innermostClass()
	if cf == nil {
		panic("typer: class member block entered with no open class body")
	}

	var thisType lattice.Type
	switch {
	case cm.IsStaticInitializer:
		thisType = cf.staticType
	case cm.IsConstructor:
		thisType = lattice.Object(nil, nil, nil)
	default:
		target := &cf.instanceType
		if kind == ir.BlockClassStatic {
			target = &cf.staticType
		}
		if !cm.Private && cm.Accessor == ir.AccessorNone {
			*target = target.WithMethod(cm.Name)
		}
		thisType = *target
	}

	bindParams(t, cm.Signature, cm.ParamVars)
	t.functions = append(t.functions, &functionFrame{
		signature:     cm.Signature,
		isConstructor: cm.IsConstructor,
		thisType:      thisType,
	})
}

// leaveClassMember records the constructor's signature for the
// enclosing class to consolidate on close, or — for a getter or setter
// — adds its name to the accumulated shape now that the body has run
// with the pre-declaration view. A static initializer or private method
// contributes no name at all.
func (t *Typer) leaveClassMember(popped *state.Frame) {
	cm, _ := popped.Meta.(ir.ClassMemberMeta)
	t.stack.MergeMayExecute(popped)
	t.functions = t.functions[:len(t.functions)-1]

	cf := t.innermostClass()
	if cm.IsConstructor {
		cf.hasCtor = true
		cf.ctorSig = cm.Signature
		return
	}
	if cm.IsStaticInitializer || cm.Private || cm.Accessor == ir.AccessorNone {
		return
	}
	if popped.Kind == ir.BlockClassStatic {
		cf.staticType = cf.staticType.WithProperty(cm.Name)
	} else {
		cf.instanceType = cf.instanceType.WithProperty(cm.Name)
	}
}

func (t *Typer) analyzeAddInstanceProperty(op ir.Op) {
	cf := t.innermostClass()
	if cf == nil {
		return
	}
	cf.instanceType = cf.instanceType.WithProperty(op.Name)
}

func (t *Typer) analyzeAddStaticProperty(op ir.Op) {
	cf := t.innermostClass()
	if cf == nil {
		return
	}
	cf.staticType = cf.staticType.WithProperty(op.Name)
}
