// Package trace provides a tracing subsystem for the Typer and its
// surrounding tooling.
//
// The trace package enables tracking of per-operation analysis, script
// processing, and other events to help diagnose performance issues and
// hangs on pathological or adversarial fuzzer-generated input.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	jstyper run --trace=- --trace-level=phase script.json
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: No scoped events (heartbeats only)
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Script-level events
//   - LevelDebug: Everything including individual operations
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopeModule: Per-script processing
//   - ScopePass: Named analysis passes (env load, one Typer run, a batch)
//   - ScopeNode: Per-operation level (block enter/leave, Analyze calls)
//
// # Context Propagation
//
// Tracers are propagated through the analysis pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "analyze", parentID)
//	defer span.End("")
package trace
