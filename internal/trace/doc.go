// Package trace provides a tracing subsystem for the troll CLI.
//
// The trace package enables tracking of decoding phases, per-variable
// collection and per-DIE type resolution to help diagnose performance
// issues on large binaries.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	troll dump --trace=phase --trace-file=- ./a.out
//
// # Architecture
//
// The package provides two tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelPhase: Driver and phase boundaries
//   - LevelDetail: Per-variable events
//   - LevelDebug: Everything including per-DIE type resolution
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level per-file operations
//   - ScopePass: Decoding phases (read, index, collect, flatten)
//   - ScopeEntity: Per-variable processing
//   - ScopeNode: DIE level (most detailed)
//
// # Context Propagation
//
// Tracers are propagated through the decoding pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "collect", parentID)
//	defer span.End("")
package trace
