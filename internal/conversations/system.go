package conversations

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/pkg/pagination"
)

// System defines the public contract for conversation domain operations.
// Search and Recent back the pipeline's retrieve stage: Search matches prior
// queries and answers by text containment, Recent returns the latest turns
// for one session, newest first.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Conversation], error)

	Find(ctx context.Context, id uuid.UUID) (*Conversation, error)
	Create(ctx context.Context, cmd CreateConversation) (*Conversation, error)

	Search(ctx context.Context, term string, limit int) ([]Conversation, error)
	Recent(ctx context.Context, sessionID string, limit int) ([]Conversation, error)
}
