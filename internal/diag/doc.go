// Package diag defines the diagnostic model shared by all decoding phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the ELF loader, the DIE indexer, the type resolver and the
//     variable collector.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary Loc – the ELF path plus the .debug_info offset of the DIE that
//     triggered the finding.
//   - Notes – optional secondary locations/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "first
// definition here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases emit through a diag.Reporter to decouple emission from storage. The
// type resolver and the variable collector call Reporter.Report directly;
// code that assembles a Diagnostic by hand uses the New/NewWarning/NewError
// constructors and chains WithNote on the value before adding it to a Bag.
//
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication and merging. DedupReporter wraps any Reporter and drops exact
// repeats, the resolver memoizes across variables so the same type defect
// would otherwise surface once per use.
//
// Keep the data model deterministic: diagnostics are serialised into the disk
// cache and compared against golden strings in tests, so any new field must
// avoid side effects and nondeterministic content.
package diag
