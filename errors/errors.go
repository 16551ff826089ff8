// Package errors provides structured error handling for the pipeline
// engine. All engine errors carry a machine-readable code so callers can
// distinguish a failed lookup from a resource conflict without string
// matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// EngineError is the unified engine error type.
type EngineError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *EngineError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *EngineError) WithDetail(key string, value any) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new EngineError.
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// HasCode reports whether err is (or wraps) an EngineError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ee *EngineError
	if stderrors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

// --- Common Error Constructors ---

// NotFound creates an error for a component lookup that matched nothing.
func NotFound(kind, typeName string) *EngineError {
	return &EngineError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no registered %s matches type %s", kind, typeName),
		Details: map[string]any{"kind": kind, "type": typeName},
	}
}

// NotImplemented creates an error for a capability a component does not provide.
func NotImplemented(capability, typeName string) *EngineError {
	return &EngineError{
		Code: ErrCodeNotImplemented, Message: fmt.Sprintf("%s not implemented for %s", capability, typeName),
		Details: map[string]any{"capability": capability, "type": typeName},
	}
}

// AlreadyOpen creates an error for binding an output name twice without reopen.
func AlreadyOpen(name string) *EngineError {
	return &EngineError{
		Code: ErrCodeAlreadyOpen, Message: fmt.Sprintf("output %q already open", name),
		Details: map[string]any{"name": name},
	}
}

// NotOpen creates an error for reading an output name that was never bound.
func NotOpen(name string) *EngineError {
	return &EngineError{
		Code: ErrCodeNotOpen, Message: fmt.Sprintf("output %q is not open", name),
		Details: map[string]any{"name": name},
	}
}

// Storage creates an error for a failed storage backend operation.
func Storage(op, path string, cause error) *EngineError {
	return &EngineError{
		Code: ErrCodeStorage, Message: fmt.Sprintf("storage %s failed for %s", op, path),
		Details: map[string]any{"op": op, "path": path},
		Cause:   cause,
	}
}

// InvalidDefinition creates an error for a malformed pipeline definition.
func InvalidDefinition(reason string) *EngineError {
	return &EngineError{
		Code: ErrCodeInvalidDefinition, Message: fmt.Sprintf("invalid pipeline definition: %s", reason),
	}
}

// UnknownComponent creates an error for a definition entry with no factory.
func UnknownComponent(name string) *EngineError {
	return &EngineError{
		Code: ErrCodeUnknownComponent, Message: fmt.Sprintf("component %q not registered", name),
		Details: map[string]any{"component": name},
	}
}

// Internal creates an error for an unexpected engine failure.
func Internal(cause error) *EngineError {
	return &EngineError{
		Code: ErrCodeInternal, Message: "unexpected engine error",
		Cause: cause,
	}
}
