// Package diag defines the diagnostic model shared by the reference
// Environment loader and the jstyper CLI: the Typer's own core never
// reports diagnostics (per its never-crash design, it widens or panics),
// but the tooling around it — TOML config loading and operation-script
// decoding — needs somewhere to collect structured, severity-leveled
// problems.
//
// # Data model
//
// Diagnostic carries a Severity, a Code (see codes.go for the domain's
// small set: environment config, operation script, Typer assertion
// failures, observability), a message, a primary Location, and optional
// Notes for secondary context.
//
// # Emitting diagnostics
//
// Callers use a Reporter to decouple emission from storage. BagReporter
// collects into a *Bag, which supports sorting and deduplication.
// DedupReporter wraps another Reporter to suppress repeats. The CLI's
// batch command, which runs many scripts against one environment config
// and would otherwise repeat the same config complaint once per script,
// uses a concurrency-safe variant of the same idea of its own.
package diag
