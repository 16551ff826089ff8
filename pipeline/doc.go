// Package pipeline provides a single-threaded execution engine for
// record-oriented analysis pipelines built from registered components.
//
// Two component kinds exist: Algorithms participate in the per-cycle
// execution loop; Tools provide shared helper behavior and never execute.
// A subset of algorithms are readers — each represents one input stream
// and advances through it at its own pace. The engine cycles over all
// algorithms in registration order until every reader has reported
// end-of-file.
//
// Components find each other by runtime type during the connect phase:
//
//	reader := pipeline.MustAlgorithmOf[*HitReader](p)
//
// Lookups are linear scans with a first-match-wins tie-break; they happen
// only during one-time setup, never per cycle.
//
// Pipelines can be assembled directly in code, or declared in YAML and
// built from a Registry of named component factories (see Definition and
// Assemble).
package pipeline
