// Package observability provides OpenTelemetry tracing and metrics for
// the pipeline engine. The engine emits one span per process run and
// counts cycles and algorithm executions when instruments are installed.
package observability
