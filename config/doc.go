// Package config loads the run configuration for a pipeline process from
// YAML files and environment variables.
package config
