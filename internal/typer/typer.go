// Package typer implements the Typer: the abstract-interpretation driver
// that walks an IR operation stream and keeps every variable's inferred
// lattice.Type queryable. It is the single point where the State Stack,
// the Environment oracle, and the per-family transfer functions meet.
package typer

import (
	"fmt"

	"jstyper/internal/env"
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
	"jstyper/internal/state"
	"jstyper/internal/trace"
)

// Typer is single-threaded and synchronous: it owns all its state and is
// driven by one builder on one logical thread. Its transfer functions
// never fail; every inconsistency widens to lattice.Unknown or
// lattice.Anything rather than returning an error, per the engine's
// never-crash design. Builder bugs are the exception: malformed block
// nesting, an unrecognized op or block kind, or a member body entered
// outside its class or object literal panics, since it signals a bug in
// the builder, not unusual input.
type Typer struct {
	env   env.Environment
	names *names.Interner
	stack *state.Stack
	tr    trace.Tracer

	functions []*functionFrame
	classes   []*classFrame
	objects   []*objectAccum

	conditionalGroups []*conditionalGroup
	switchGroups      []*switchGroup
}

// functionFrame tracks the bookkeeping a function-like body (standalone
// function, class method/getter/setter/constructor, object-literal
// method/getter/setter) needs beyond what the State Stack itself holds.
type functionFrame struct {
	signature     lattice.Signature
	isConstructor bool
	thisType      lattice.Type
}

// classFrame tracks one open class body's incrementally accumulated
// instance and static shapes, and its inheritance bindings.
type classFrame struct {
	instanceType lattice.Type
	staticType   lattice.Type

	hasCtor  bool
	ctorSig  lattice.Signature

	hasSuper          bool
	superInstanceType lattice.Type
	superClassType    lattice.Type
}

// New returns a Typer reading builtins and group tables from e, sharing
// the given name interner with the builder and the environment.
func New(e env.Environment, in *names.Interner) *Typer {
	return &Typer{
		env:   e,
		names: in,
		stack: state.New(),
	}
}

// SetTracer attaches a tracer used to emit a span per analyzed operation
// and per block lifecycle event. A nil tracer (the default) disables
// tracing entirely.
func (t *Typer) SetTracer(tr trace.Tracer) {
	t.tr = tr
}

// Reset discards every open frame and forgets every variable, matching
// the core spec's reset() operation used by test harnesses between
// scenarios.
func (t *Typer) Reset() {
	t.stack = state.New()
	t.functions = nil
	t.classes = nil
	t.objects = nil
	t.conditionalGroups = nil
	t.switchGroups = nil
}

// TypeOf returns v's current inferred type, or lattice.Unknown if v was
// never bound (including a variable ID the caller simply made up).
func (t *Typer) TypeOf(v ir.VarID) lattice.Type {
	if got, ok := t.stack.Get(v); ok {
		return got
	}
	return lattice.Unknown
}

// CurrentSuperType returns the parent instance type visible inside the
// innermost open class's member bodies, or lattice.Unknown if there is
// no enclosing class or it declared no superclass.
func (t *Typer) CurrentSuperType() lattice.Type {
	c := t.innermostClass()
	if c == nil || !c.hasSuper {
		return lattice.Unknown
	}
	return c.superInstanceType
}

// CurrentSuperConstructorType returns the parent class's own value
// (static shape plus constructor signature) visible inside the
// innermost open class's constructor body, or lattice.Unknown outside a
// constructor body or a class with no superclass.
func (t *Typer) CurrentSuperConstructorType() lattice.Type {
	c := t.innermostClass()
	if c == nil || !c.hasSuper {
		return lattice.Unknown
	}
	f := t.innermostFunction()
	if f == nil || !f.isConstructor {
		return lattice.Unknown
	}
	return c.superClassType
}

// CurrentReturnType returns the declared return type of the innermost
// open function-like body, or lattice.Unknown outside any such body.
func (t *Typer) CurrentReturnType() lattice.Type {
	f := t.innermostFunction()
	if f == nil {
		return lattice.Unknown
	}
	return f.signature.Return
}

func (t *Typer) innermostFunction() *functionFrame {
	if len(t.functions) == 0 {
		return nil
	}
	return t.functions[len(t.functions)-1]
}

func (t *Typer) innermostClass() *classFrame {
	if len(t.classes) == 0 {
		return nil
	}
	return t.classes[len(t.classes)-1]
}

func (t *Typer) innermostObject() *objectAccum {
	if len(t.objects) == 0 {
		return nil
	}
	return t.objects[len(t.objects)-1]
}

// set is the one place a transfer function writes a variable's type,
// matching the core spec's set(V, T) primitive.
func (t *Typer) set(v ir.VarID, ty lattice.Type) {
	t.stack.Set(v, ty)
}

// get is the one place a transfer function reads a variable's type.
func (t *Typer) get(v ir.VarID) lattice.Type {
	if got, ok := t.stack.Get(v); ok {
		return got
	}
	return lattice.Unknown
}

func (t *Typer) span(name string) func() {
	s := trace.Begin(t.tr, trace.ScopeNode, name, 0)
	return func() { s.End("") }
}

// Analyze runs the transfer function for op, reading inputs and writing
// outputs[0] (almost every family produces at most one value; Destruct
// is the sole exception and handles its own multi-output writes).
func (t *Typer) Analyze(op ir.Op, inputs []ir.VarID, outputs []ir.VarID) {
	defer t.span(fmt.Sprintf("analyze:%d", op.Kind))()

	switch op.Kind {
	case ir.OpLoadInt:
		t.out(outputs, t.env.IntType())
	case ir.OpLoadFloat:
		t.out(outputs, t.env.FloatType())
	case ir.OpLoadString:
		t.out(outputs, t.env.StringType())
	case ir.OpLoadBool:
		t.out(outputs, t.env.BooleanType())
	case ir.OpLoadBigInt:
		t.out(outputs, t.env.BigIntType())
	case ir.OpLoadRegExp:
		t.out(outputs, t.env.RegExpType())
	case ir.OpLoadNull:
		t.out(outputs, lattice.Null)
	case ir.OpLoadUndefined:
		t.out(outputs, lattice.Undefined)
	case ir.OpLoadThis:
		t.out(outputs, t.loadThis())
	case ir.OpLoadBuiltin:
		t.out(outputs, t.env.TypeOfBuiltin(op.Name))

	case ir.OpUnary:
		t.out(outputs, t.analyzeUnary(op, inputs))
	case ir.OpBinary:
		t.out(outputs, t.analyzeBinary(op, inputs))

	case ir.OpReassign:
		t.analyzeReassign(op, inputs)
	case ir.OpReassignWithOp:
		t.analyzeReassignWithOp(op, inputs)

	case ir.OpCreateObject:
		t.out(outputs, t.analyzeCreateObject(op))
	case ir.OpSetProperty:
		t.analyzeSetProperty(op, inputs)
	case ir.OpDeleteProperty:
		t.analyzeDeleteProperty(op, inputs)
	case ir.OpGetProperty:
		t.out(outputs, t.analyzeGetProperty(op, inputs))
	case ir.OpCallMethod:
		t.out(outputs, t.analyzeCallMethod(op, inputs))
	case ir.OpCallFunction:
		t.out(outputs, t.analyzeCallFunction(inputs))
	case ir.OpConstruct:
		t.out(outputs, t.analyzeConstruct(inputs))
	case ir.OpDestruct:
		t.analyzeDestruct(op, inputs, outputs)

	case ir.OpAddInstanceProperty:
		t.analyzeAddInstanceProperty(op)
	case ir.OpAddStaticProperty:
		t.analyzeAddStaticProperty(op)
	case ir.OpAddProperty:
		t.analyzeAddProperty(op)
	case ir.OpAddElement:
		// Integer-indexed elements never affect the object shape.

	default:
		panic(fmt.Sprintf("typer: unrecognized op kind %d", op.Kind))
	}
}

// out writes a single-output op's result, ignoring ops whose builder
// chose not to capture the value (outputs empty).
func (t *Typer) out(outputs []ir.VarID, ty lattice.Type) {
	if len(outputs) == 0 {
		return
	}
	t.set(outputs[0], ty)
}

func (t *Typer) loadThis() lattice.Type {
	if f := t.innermostFunction(); f != nil {
		return f.thisType
	}
	return lattice.Object(nil, nil, nil)
}
