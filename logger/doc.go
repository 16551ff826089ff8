// Package logger provides structured logging for the pipeline engine,
// backed by zerolog.
package logger
