// Package conversations implements the conversation record domain for Sage.
// Every completed query run persists one append-only record; the pipeline's
// retrieve stage and the HTTP surface both read from the same store.
package conversations

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one recorded query run: the query, how it was routed, and
// the final answer. Records are append-only; there are no update or delete
// operations in this domain.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Label     string    `json:"label"`
	Handler   string    `json:"handler"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateConversation carries the data needed to record a completed run.
type CreateConversation struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	Label     string `json:"label"`
	Handler   string `json:"handler"`
	Answer    string `json:"answer"`
}
