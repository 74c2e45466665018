package completion

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for completion failures.
var (
	// ErrBackendUnavailable indicates the completion backend could not be reached
	// or returned a transport-level failure.
	ErrBackendUnavailable = errors.New("completion backend unavailable")
	// ErrSchemaInvalid indicates the backend responded but the output did not
	// parse as JSON or did not satisfy the request schema.
	ErrSchemaInvalid = errors.New("completion output failed schema validation")
	// ErrRetriesExhausted indicates the attempt budget was consumed without a
	// schema-valid response.
	ErrRetriesExhausted = errors.New("completion retries exhausted")
)

// ValidationError reports every field that failed schema validation.
// It matches ErrSchemaInvalid under errors.Is.
type ValidationError struct {
	Schema string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchemaInvalid, e.Schema, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrSchemaInvalid
}

// ExhaustedError is the terminal failure returned when maxAttempts attempts
// all failed. Attempts is always exactly the budget that was given.
// It matches ErrRetriesExhausted under errors.Is and unwraps to the last
// attempt's error.
type ExhaustedError struct {
	Schema   string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts: %v", ErrRetriesExhausted, e.Schema, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}
