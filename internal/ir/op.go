package ir

import "jstyper/internal/names"

// OpKind names one IR operation family. Each has a matching transfer
// function in the typer package.
type OpKind uint8

const (
	OpInvalid OpKind = iota

	// Constants.
	OpLoadInt
	OpLoadFloat
	OpLoadString
	OpLoadBool
	OpLoadBigInt
	OpLoadRegExp
	OpLoadNull
	OpLoadUndefined
	OpLoadThis
	OpLoadBuiltin

	// Arithmetic / logic.
	OpUnary
	OpBinary

	// Reassignment.
	OpReassign
	OpReassignWithOp

	// Objects and properties.
	OpCreateObject
	OpSetProperty
	OpDeleteProperty
	OpGetProperty
	OpCallMethod
	OpCallFunction
	OpConstruct
	OpDestruct

	// Bodyless class and object-literal members: these mutate an
	// accumulator the enclosing BlockClassBody/BlockObjectLiteral frame
	// tracks, without opening a sub-frame of their own.
	OpAddInstanceProperty
	OpAddStaticProperty
	OpAddProperty
	OpAddElement
)

// UnaryOp distinguishes the unary operator families the transfer function
// for OpUnary cares about.
type UnaryOp uint8

const (
	// UnaryLogicalNot is `!x`; always produces .boolean.
	UnaryLogicalNot UnaryOp = iota
	// UnaryArithmetic covers the numeric unary operators `-x`, `+x`,
	// `~x`, with bigint contagion. `typeof x` has no UnaryOp of its own.
	UnaryArithmetic
)

// BinaryOp distinguishes the binary operator families the transfer
// function for OpBinary cares about.
type BinaryOp uint8

const (
	// BinaryAdd is `+`, which gets the string/number special case.
	BinaryAdd BinaryOp = iota
	// BinaryArithmetic covers the other numeric/bitwise binary operators.
	BinaryArithmetic
	// BinaryLogicOr is `||`.
	BinaryLogicOr
	// BinaryLogicAnd is `&&`.
	BinaryLogicAnd
	// BinaryCompare covers equality and relational operators; always
	// produces .boolean.
	BinaryCompare
	// BinaryInstanceOf is `instanceof`; always produces .boolean.
	BinaryInstanceOf
	// BinaryIn is `in`; always produces .boolean.
	BinaryIn
)

// Op is the single operation value the Typer's analyze method consumes,
// mirroring the core spec's external interface `analyze(op, inputs,
// outputs)`. Field meaning depends on Kind; see the per-family transfer
// function for which fields it reads.
type Op struct {
	Kind OpKind

	UnaryOp  UnaryOp
	BinaryOp BinaryOp

	// Name carries the single property/method/builtin name a
	// single-name op needs (GetProperty, SetProperty, DeleteProperty,
	// CallMethod, LoadBuiltin).
	Name names.ID

	// Names carries a name set for ops that describe several at once
	// (CreateObject's property keys, Destruct's selected properties).
	Names []names.ID

	// HasRestElement is read by OpDestruct.
	HasRestElement bool
}
