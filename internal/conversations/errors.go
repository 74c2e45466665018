package conversations

import (
	"errors"
	"net/http"
)

// Domain errors for conversation operations.
var (
	// ErrNotFound indicates no conversation exists for the given identifier.
	ErrNotFound = errors.New("conversation not found")
	// ErrDuplicate indicates a uniqueness violation on insert.
	ErrDuplicate = errors.New("conversation already exists")
	// ErrEmptyRecord indicates a create command missing required fields.
	ErrEmptyRecord = errors.New("query and answer are required")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyRecord):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
