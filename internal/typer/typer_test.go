package typer

import (
	"testing"

	"jstyper/internal/env"
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

func newTestTyper() (*Typer, *names.Interner) {
	in := names.New()
	e := env.NewStaticEnvironment(in)
	return New(e, in), in
}

// Scenario 1: v = loadInt(42); r = binary(v, loadString("x"), Add).
func TestScenarioAddWithStringWidensToPrimitive(t *testing.T) {
	ty, _ := newTestTyper()

	const v, s, r ir.VarID = 1, 2, 3
	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})
	ty.Analyze(ir.Op{Kind: ir.OpLoadString}, nil, []ir.VarID{s})
	ty.Analyze(ir.Op{Kind: ir.OpBinary, BinaryOp: ir.BinaryAdd}, []ir.VarID{v, s}, []ir.VarID{r})

	if got := ty.TypeOf(v); !got.Equal(lattice.Integer) {
		t.Fatalf("typeOf(v) = %v, want .integer", got)
	}
	if got := ty.TypeOf(r); !got.Equal(lattice.Primitive) {
		t.Fatalf("typeOf(r) = %v, want .primitive", got)
	}
}

// Scenario 2: object literal with property a, method m, getter b, setter
// c, and integer element 0.
func TestScenarioObjectLiteralShape(t *testing.T) {
	ty, in := newTestTyper()

	const (
		out    ir.VarID = 1
		propV  ir.VarID = 2
		elemV  ir.VarID = 3
		ret    ir.VarID = 4
		aName           = "a"
		mName           = "m"
		bName           = "b"
		cName           = "c"
	)

	ty.EnterBlock(ir.BlockObjectLiteral, ir.ObjectLiteralMeta{Output: out})

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{propV})
	ty.Analyze(ir.Op{Kind: ir.OpAddProperty, Name: in.Intern(aName)}, []ir.VarID{propV}, nil)

	ty.EnterBlock(ir.BlockFunction, ir.ObjectMemberMeta{Name: in.Intern(mName), Signature: lattice.NoArgs(lattice.Unknown)})
	ty.Analyze(ir.Op{Kind: ir.OpLoadUndefined}, nil, []ir.VarID{ret})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockFunction, ir.ObjectMemberMeta{Name: in.Intern(bName), Accessor: ir.AccessorGetter, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockFunction, ir.ObjectMemberMeta{Name: in.Intern(cName), Accessor: ir.AccessorSetter, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{elemV})
	ty.Analyze(ir.Op{Kind: ir.OpAddElement}, []ir.VarID{elemV}, nil)

	ty.LeaveBlock()

	got := ty.TypeOf(out)
	shape, ok := got.Shape()
	if !ok {
		t.Fatalf("expected object shape, got %v", got)
	}
	wantProps := []names.ID{in.Intern(aName), in.Intern(bName), in.Intern(cName)}
	for _, p := range wantProps {
		if !containsID(shape.Properties, p) {
			t.Fatalf("expected property %v in %v", p, shape.Properties)
		}
	}
	if !containsID(shape.Methods, in.Intern(mName)) {
		t.Fatalf("expected method m in %v", shape.Methods)
	}
}

func containsID(ids []names.ID, id names.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Scenario 4: v=loadInt(42); if/else reassigning v to string / float.
func TestScenarioIfElseUnionsBothArms(t *testing.T) {
	ty, _ := newTestTyper()
	const v ir.VarID = 1

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockConditional, ir.ConditionalMeta{HasElse: true})
	reassignTo(ty, v, ir.OpLoadString)
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockConditional, ir.ConditionalMeta{IsElse: true})
	reassignTo(ty, v, ir.OpLoadFloat)
	ty.LeaveBlock()

	want := lattice.Union(lattice.String, lattice.Float)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v", got, want)
	}
}

// Scenario 5: v=loadInt(42); if(v) { reassign(v, loadString) }.
func TestScenarioLoneIfUnionsWithPreBranchType(t *testing.T) {
	ty, _ := newTestTyper()
	const v ir.VarID = 1

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockConditional, ir.ConditionalMeta{})
	reassignTo(ty, v, ir.OpLoadString)
	ty.LeaveBlock()

	want := lattice.Union(lattice.Integer, lattice.String)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v", got, want)
	}
}

// reassignTo loads a fresh value of the given constant-loading kind into
// a scratch variable and reassigns v from it.
func reassignTo(ty *Typer, v ir.VarID, loadKind ir.OpKind) {
	const scratch ir.VarID = 9999
	ty.Analyze(ir.Op{Kind: loadKind}, nil, []ir.VarID{scratch})
	ty.Analyze(ir.Op{Kind: ir.OpReassign}, []ir.VarID{v, scratch}, nil)
}

// Scenario 6: builtin B of group "B" has property foo = .float; the same
// getProperty on a builtin of unknown group yields .unknown.
func TestScenarioGroupPropertyLookup(t *testing.T) {
	in := names.New()
	se := env.NewStaticEnvironment(in)
	se.RegisterBuiltin("B", lattice.Object(nil, nil, nil).WithGroup(in.Intern("B")))
	se.RegisterGroupProperty("B", "foo", lattice.Float)
	se.RegisterBuiltin("Plain", lattice.Object(nil, nil, nil))
	ty := New(se, in)

	const builtinVar, propVar, plainVar, plainPropVar ir.VarID = 1, 2, 3, 4

	ty.Analyze(ir.Op{Kind: ir.OpLoadBuiltin, Name: in.Intern("B")}, nil, []ir.VarID{builtinVar})
	ty.Analyze(ir.Op{Kind: ir.OpGetProperty, Name: in.Intern("foo")}, []ir.VarID{builtinVar}, []ir.VarID{propVar})
	if got := ty.TypeOf(propVar); !got.Equal(lattice.Float) {
		t.Fatalf("typeOf(p) = %v, want .float", got)
	}

	ty.Analyze(ir.Op{Kind: ir.OpLoadBuiltin, Name: in.Intern("Plain")}, nil, []ir.VarID{plainVar})
	ty.Analyze(ir.Op{Kind: ir.OpGetProperty, Name: in.Intern("foo")}, []ir.VarID{plainVar}, []ir.VarID{plainPropVar})
	if got := ty.TypeOf(plainPropVar); !got.IsUnknown() {
		t.Fatalf("typeOf(p) = %v, want .unknown", got)
	}
}

// Scenario 3: class with instance properties a, b, instance method f,
// instance getter c, instance method g, static properties a, d, static
// method g, static setter e, static method h, and a constructor taking a
// single string argument.
func TestScenarioClassBodyAccumulatesInstanceAndStaticShape(t *testing.T) {
	ty, in := newTestTyper()

	const (
		classVar ir.VarID = 1
		propV    ir.VarID = 2
	)
	aName, bName, cName, dName := in.Intern("a"), in.Intern("b"), in.Intern("c"), in.Intern("d")
	eName, fName, gName, hName := in.Intern("e"), in.Intern("f"), in.Intern("g"), in.Intern("h")

	ty.EnterBlock(ir.BlockClassBody, ir.ClassBodyMeta{Output: classVar})

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{propV})
	ty.Analyze(ir.Op{Kind: ir.OpAddInstanceProperty, Name: aName}, []ir.VarID{propV}, nil)
	ty.Analyze(ir.Op{Kind: ir.OpAddInstanceProperty, Name: bName}, []ir.VarID{propV}, nil)

	ty.EnterBlock(ir.BlockClassMethod, ir.ClassMemberMeta{Name: fName, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockClassMethod, ir.ClassMemberMeta{Name: cName, Accessor: ir.AccessorGetter, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockClassMethod, ir.ClassMemberMeta{Name: gName, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.Analyze(ir.Op{Kind: ir.OpAddStaticProperty, Name: aName}, []ir.VarID{propV}, nil)
	ty.Analyze(ir.Op{Kind: ir.OpAddStaticProperty, Name: dName}, []ir.VarID{propV}, nil)

	ty.EnterBlock(ir.BlockClassStatic, ir.ClassMemberMeta{Name: gName, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockClassStatic, ir.ClassMemberMeta{Name: eName, Accessor: ir.AccessorSetter, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockClassStatic, ir.ClassMemberMeta{Name: hName, Signature: lattice.NoArgs(lattice.Unknown)})
	ty.LeaveBlock()

	ctorSig := lattice.Signature{Params: []lattice.Param{{Kind: lattice.ParamPlain, Type: lattice.String}}}
	ty.EnterBlock(ir.BlockClassMethod, ir.ClassMemberMeta{IsConstructor: true, Signature: ctorSig})
	ty.LeaveBlock()

	ty.LeaveBlock()

	got := ty.TypeOf(classVar)
	staticShape, ok := got.Shape()
	if !ok {
		t.Fatalf("expected class value to carry a shape, got %v", got)
	}
	for _, want := range []names.ID{aName, dName, eName} {
		if !containsID(staticShape.Properties, want) {
			t.Fatalf("expected static property %v in %v", want, staticShape.Properties)
		}
	}
	for _, want := range []names.ID{gName, hName} {
		if !containsID(staticShape.Methods, want) {
			t.Fatalf("expected static method %v in %v", want, staticShape.Methods)
		}
	}

	ctor, ok := got.ConstructSignature()
	if !ok {
		t.Fatalf("expected class value to carry a construct signature")
	}
	if len(ctor.Params) != 1 || !ctor.Params[0].Type.Equal(lattice.String) {
		t.Fatalf("expected constructor to take a single string argument, got %v", ctor.Params)
	}
	instanceShape, ok := ctor.Return.Shape()
	if !ok {
		t.Fatalf("expected constructor return to carry a shape, got %v", ctor.Return)
	}
	for _, want := range []names.ID{aName, bName, cName} {
		if !containsID(instanceShape.Properties, want) {
			t.Fatalf("expected instance property %v in %v", want, instanceShape.Properties)
		}
	}
	for _, want := range []names.ID{fName, gName} {
		if !containsID(instanceShape.Methods, want) {
			t.Fatalf("expected instance method %v in %v", want, instanceShape.Methods)
		}
	}
}

// A switch with no default must keep the pre-switch type alive (control
// may fall through every case untouched).
func TestScenarioSwitchWithNoDefaultKeepsPreSwitchType(t *testing.T) {
	ty, _ := newTestTyper()
	const v ir.VarID = 1

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockSwitchCase, ir.SwitchCaseMeta{IsFirst: true})
	reassignTo(ty, v, ir.OpLoadString)
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockSwitchCase, ir.SwitchCaseMeta{IsLast: true})
	reassignTo(ty, v, ir.OpLoadFloat)
	ty.LeaveBlock()

	want := lattice.Union(lattice.Union(lattice.Integer, lattice.String), lattice.Float)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v (pre-switch type must survive the no-default case)", got, want)
	}
}

// A switch with every case covered by a default has no implicit
// fallthrough contributor: the pre-switch type does not survive unless a
// case itself reintroduces it.
func TestScenarioSwitchWithDefaultDropsPreSwitchType(t *testing.T) {
	ty, _ := newTestTyper()
	const v ir.VarID = 1

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockSwitchCase, ir.SwitchCaseMeta{IsFirst: true, HasDefault: true})
	reassignTo(ty, v, ir.OpLoadString)
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockSwitchCase, ir.SwitchCaseMeta{IsLast: true, HasDefault: true})
	reassignTo(ty, v, ir.OpLoadFloat)
	ty.LeaveBlock()

	want := lattice.Union(lattice.String, lattice.Float)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v (fully-covered switch must drop the pre-switch type)", got, want)
	}
}

// A for-in loop binds its loop variable to .string before the body runs,
// and the body (which may run zero times) unions back with the pre-loop
// type.
func TestScenarioForInLoopBindsStringAndMayNotExecute(t *testing.T) {
	ty, _ := newTestTyper()
	const v, loopVar ir.VarID = 1, 2

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockLoop, ir.LoopMeta{Kind: ir.LoopForIn, LoopVar: loopVar})
	if got := ty.TypeOf(loopVar); !got.Equal(lattice.String) {
		t.Fatalf("typeOf(loopVar) = %v, want .string", got)
	}
	reassignTo(ty, v, ir.OpLoadBool)
	ty.LeaveBlock()

	want := lattice.Union(lattice.Integer, lattice.Boolean)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v (loop body may not execute)", got, want)
	}
}

// A try body may not execute at all (an early throw), a catch body unions
// in on top of that, and a finally body runs on every path but still
// unions with what preceded it rather than overwriting it outright.
func TestScenarioTryCatchFinallyUnionsAllArms(t *testing.T) {
	ty, _ := newTestTyper()
	const v, exc ir.VarID = 1, 2

	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})

	ty.EnterBlock(ir.BlockTry, nil)
	reassignTo(ty, v, ir.OpLoadString)
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockCatch, ir.CatchMeta{ExceptionVar: exc})
	reassignTo(ty, v, ir.OpLoadFloat)
	ty.LeaveBlock()

	ty.EnterBlock(ir.BlockFinally, nil)
	reassignTo(ty, v, ir.OpLoadBool)
	ty.LeaveBlock()

	want := lattice.Union(lattice.Union(lattice.Union(lattice.Integer, lattice.String), lattice.Float), lattice.Boolean)
	if got := ty.TypeOf(v); !got.Equal(want) {
		t.Fatalf("typeOf(v) = %v, want %v", got, want)
	}
}

func TestResetDiscardsState(t *testing.T) {
	ty, _ := newTestTyper()
	const v ir.VarID = 1
	ty.Analyze(ir.Op{Kind: ir.OpLoadInt}, nil, []ir.VarID{v})
	ty.Reset()
	if got := ty.TypeOf(v); !got.IsUnknown() {
		t.Fatalf("expected unknown after reset, got %v", got)
	}
}

func TestMalformedNestingPanics(t *testing.T) {
	ty, _ := newTestTyper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic leaving the root frame")
		}
	}()
	ty.LeaveBlock()
}
