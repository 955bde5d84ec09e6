// Package diag defines the diagnostic model shared by all extraction phases.
//
// Diagnostic is the central record: severity, a stable numeric code, a message,
// a primary source span, and optional notes with secondary spans. Producers emit
// through a Reporter so they stay decoupled from storage; BagReporter aggregates
// into a Bag, which supports bounded collection, deterministic sorting, merging,
// and deduplication.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration and per-header bag collection live in
// internal/driver.
//
// Keep the data model deterministic and serialisable: diagnostics are part of
// the observable output of an extraction run and are compared in tests.
package diag
