package conversations

import (
	"net/url"

	"github.com/JaimeStill/sage/pkg/query"
	"github.com/JaimeStill/sage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "conversations", "c").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("query", "Query").
	Project("label", "Label").
	Project("handler", "Handler").
	Project("answer", "Answer").
	Project("created_at", "CreatedAt")

// Most recent first; id breaks created_at ties so bounded reads return
// the same rows on every call.
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

// Filters contains optional filtering criteria for conversation queries.
// Nil fields are ignored. SessionID, Label, and Handler use exact matching.
type Filters struct {
	SessionID *string `json:"session_id,omitempty"`
	Label     *string `json:"label,omitempty"`
	Handler   *string `json:"handler,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SessionID", f.SessionID).
		WhereEquals("Label", f.Label).
		WhereEquals("Handler", f.Handler)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("session_id"); s != "" {
		f.SessionID = &s
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if h := values.Get("handler"); h != "" {
		f.Handler = &h
	}

	return f
}

func scanConversation(s repository.Scanner) (Conversation, error) {
	var c Conversation
	err := s.Scan(
		&c.ID,
		&c.SessionID,
		&c.Query,
		&c.Label,
		&c.Handler,
		&c.Answer,
		&c.CreatedAt,
	)
	return c, err
}
