// Package snapshot records a Typer run's final variable bindings to disk
// and compares them against a later run, the way a corpus-replay harness
// pins down a fuzzer's expected output between changes to the analyzer.
//
// A Snapshot is deliberately not a serialization of lattice.Type itself
// (Type's fields are unexported, by design — see the lattice package) but
// of its rendered string form, which is exactly the signal a regression
// check cares about: did this variable's inferred type change.
package snapshot
