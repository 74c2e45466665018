package notes

import "errors"

// ErrEmptyNote indicates an append was requested with no content.
var ErrEmptyNote = errors.New("note content is required")
