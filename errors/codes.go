package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registry errors
const (
	// ErrCodeNotFound indicates no registered component matched a lookup.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeNotImplemented indicates a component does not provide an
	// optional capability that a lookup required (e.g. a tag accessor).
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
)

// Resource errors
const (
	// ErrCodeAlreadyOpen indicates an output name is already bound.
	ErrCodeAlreadyOpen ErrorCode = "ALREADY_OPEN"
	// ErrCodeNotOpen indicates an output name is not bound.
	ErrCodeNotOpen ErrorCode = "NOT_OPEN"
	// ErrCodeStorage indicates the storage backend failed.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

// Assembly errors
const (
	// ErrCodeInvalidDefinition indicates a pipeline definition failed to
	// parse or validate.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
	// ErrCodeUnknownComponent indicates a definition names a component
	// with no registered factory.
	ErrCodeUnknownComponent ErrorCode = "UNKNOWN_COMPONENT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected engine failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
