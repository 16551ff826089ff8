// Package bootstrap wires configuration, logging and telemetry around a
// single pipeline run.
package bootstrap
