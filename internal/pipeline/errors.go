package pipeline

import "errors"

// Sentinel errors for pipeline failures.
var (
	// ErrEmptyQuery indicates a run was requested with no query text.
	ErrEmptyQuery = errors.New("query text is required")
	// ErrPipelineState indicates a node found the shared state bag missing or
	// carrying the wrong type for a required key. This is a programming error,
	// not a model failure.
	ErrPipelineState = errors.New("invalid pipeline state")
)
