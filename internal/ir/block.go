package ir

import (
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// MergeMode selects how a closed frame's variable writes are folded back
// into its parent, matching the core spec's three merge strategies.
type MergeMode uint8

const (
	// MergeUnionAllExecuted applies when every child frame is known to
	// run to completion (e.g. both sides of an if/else): a variable's
	// merged type is the union of its type across every frame that
	// wrote it, falling back to the parent's existing type for frames
	// that left it untouched.
	MergeUnionAllExecuted MergeMode = iota
	// MergeMayExecute applies when the frame might run zero times (loop
	// bodies, a lone if with no else, try bodies, object-literal and
	// class member bodies): the merged type is the union of the parent's
	// pre-block type and the block's result, since control may also
	// have skipped the block entirely.
	MergeMayExecute
	// MergeMustExecute applies when the frame is known to run exactly
	// once on every path that reaches the parent: the merged type is
	// the frame's final value. The Typer's block protocol selects this
	// mode for no block kind; state.Stack.MergeMustExecute implements it.
	MergeMustExecute
)

// FunctionKind distinguishes the function flavors the spec assigns
// different post-body types to.
type FunctionKind uint8

const (
	FunctionPlain FunctionKind = iota
	FunctionArrow
	FunctionGenerator
	FunctionAsync
	FunctionAsyncArrow
	FunctionAsyncGenerator
)

// AccessorKind distinguishes a class or object-literal member declaration
// that is a plain method from one that is a getter or setter.
type AccessorKind uint8

const (
	AccessorNone AccessorKind = iota
	AccessorGetter
	AccessorSetter
)

// LoopKind distinguishes the loop member-binding shapes the core spec
// calls out: for-in and for-of bind a loop variable before the body runs,
// plain loops bind nothing extra.
type LoopKind uint8

const (
	LoopPlain   LoopKind = iota // while, do-while, repeat: no bound loop variable
	LoopNumeric                 // for(;;): loop variable bound to .primitive
	LoopForIn                   // loop variable bound to .string
	LoopForOf                   // loop variable bound to .unknown
)

// BlockMeta is the block-kind-specific payload passed to a block's entry,
// analogous to how the lineage's AST item table keys per-kind payloads off
// a shared node id. Each concrete type below implements it as a marker.
type BlockMeta interface {
	isBlockMeta()
}

// FunctionMeta accompanies BlockFunction: a standalone function
// declaration's entry.
type FunctionMeta struct {
	Output    VarID // the variable the finished function value is written to
	Kind      FunctionKind
	Signature lattice.Signature
	ParamVars []VarID
}

func (FunctionMeta) isBlockMeta() {}

// ClassBodyMeta accompanies BlockClassBody: the class declaration's own
// entry, before any member is seen.
type ClassBodyMeta struct {
	Output     VarID // the variable the finished class value is written to
	Superclass VarID // NoVar if the class has no extends clause
}

func (ClassBodyMeta) isBlockMeta() {}

// ClassMemberMeta accompanies BlockClassMethod, BlockClassStatic, and
// BlockClassStaticInitializer: one member body's entry.
type ClassMemberMeta struct {
	// Name is unset (names.NoID) for a constructor or static initializer.
	Name      names.ID
	Signature lattice.Signature
	ParamVars []VarID
	Accessor  AccessorKind
	Private   bool

	IsConstructor       bool
	IsStaticInitializer bool
}

func (ClassMemberMeta) isBlockMeta() {}

// ObjectLiteralMeta accompanies BlockObjectLiteral: an object literal's
// own entry.
type ObjectLiteralMeta struct {
	Output VarID
}

func (ObjectLiteralMeta) isBlockMeta() {}

// ObjectMemberMeta accompanies a BlockFunction entered for an object
// literal's method, getter, or setter body (these share a function
// body's may-execute merge semantics; they differ from a standalone
// function in binding `this` to the enclosing object literal's
// accumulated shape and in adding the member name to it: a method's on
// entry, a getter's or setter's on close).
type ObjectMemberMeta struct {
	Name      names.ID
	Signature lattice.Signature
	ParamVars []VarID
	Accessor  AccessorKind
}

func (ObjectMemberMeta) isBlockMeta() {}

// LoopMeta accompanies BlockLoop.
type LoopMeta struct {
	Kind    LoopKind
	LoopVar VarID // bound for LoopNumeric/LoopForIn/LoopForOf, NoVar for LoopPlain
}

func (LoopMeta) isBlockMeta() {}

// CatchMeta accompanies BlockCatch: the bound exception variable, if the
// catch clause names one.
type CatchMeta struct {
	ExceptionVar VarID
}

func (CatchMeta) isBlockMeta() {}

// ConditionalMeta accompanies BlockConditional: one arm of an if or
// if/else statement's entry.
type ConditionalMeta struct {
	// HasElse is set on the if-arm when an else-arm will follow, so the
	// Typer holds its diff for a union-all-executed merge instead of
	// merging it immediately as may-execute.
	HasElse bool
	// IsElse marks the else-arm's own entry.
	IsElse bool
}

func (ConditionalMeta) isBlockMeta() {}

// SwitchCaseMeta accompanies BlockSwitchCase: one case or default arm's
// entry within a single switch statement.
type SwitchCaseMeta struct {
	// IsFirst opens a new sibling group for the enclosing switch.
	IsFirst bool
	// IsLast closes the sibling group, triggering the merge: union-all-
	// executed across every case if HasDefault, else the same merge
	// with an implicit "no case matched" contributor added so the
	// pre-switch type always remains possible.
	IsLast     bool
	HasDefault bool
}

func (SwitchCaseMeta) isBlockMeta() {}

