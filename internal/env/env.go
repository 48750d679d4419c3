// Package env defines the Environment oracle the Typer queries for
// builtin, property, and method types, and a TOML-driven reference
// implementation used by tests and the jstyper CLI.
//
// The Typer never constructs an Environment itself — per the core spec,
// the concrete (real-host) Environment is an external collaborator. This
// package only fixes the interface and ships one reference implementation
// good enough to exercise every query path end to end.
package env

import (
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// Environment is the oracle the Typer consults for facts it cannot derive
// from the IR alone: builtin types, per-group property/method types, and
// configurable primitive types.
//
// Implementations must be referentially transparent within a single
// analysis run: once a query answer is observed it must not change, except
// through an explicit Declare* call (whose effect is only visible to
// queries issued afterwards — the Typer never retroactively revisits past
// inferences).
type Environment interface {
	// TypeOfBuiltin returns the type of the named builtin, or
	// lattice.Unknown if absent.
	TypeOfBuiltin(name names.ID) lattice.Type

	// TypeOfProperty returns the type of the named property, consulting
	// the per-group table when hasGroup is true and the global
	// declaration table otherwise. Returns lattice.Unknown if both miss.
	TypeOfProperty(name names.ID, group names.ID, hasGroup bool) lattice.Type

	// SignatureOfMethod returns the signature of the named method, or
	// (_, false) if unknown.
	SignatureOfMethod(name names.ID, group names.ID, hasGroup bool) (lattice.Signature, bool)

	// DeclareProperty records a program-wide "property p has type T"
	// fact. Declarations accumulate and take precedence over the
	// absence of a per-group entry, but a per-group entry (when the
	// receiver's group is known) still overrides it.
	DeclareProperty(name names.ID, t lattice.Type)

	// DeclareMethod records a program-wide "method m has signature S"
	// fact, with the same precedence rules as DeclareProperty.
	DeclareMethod(name names.ID, sig lattice.Signature)

	// IntType, FloatType, BooleanType, StringType, BigIntType,
	// RegExpType, and ArrayType return the configured type to use for
	// the corresponding constant-load and array-producing operations.
	// They default to the canonical lattice constants.
	IntType() lattice.Type
	FloatType() lattice.Type
	BooleanType() lattice.Type
	StringType() lattice.Type
	BigIntType() lattice.Type
	RegExpType() lattice.Type
	ArrayType() lattice.Type
}
