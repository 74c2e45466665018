package pipeline

import "context"

// FallbackNotice is produced when no specialist matches the classified
// label. It makes routing total without inventing an answer. Label is filled
// in by the dispatch stage from the classification.
type FallbackNotice struct {
	Query string `json:"query"`
	Label Label  `json:"label"`
}

func (FallbackNotice) Kind() string { return "fallback" }

type fallbackSpecialist struct{}

func (fallbackSpecialist) Label() Label { return Label("fallback") }

func (fallbackSpecialist) Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error) {
	return FallbackNotice{Query: query}, nil, nil
}

func (fallbackSpecialist) Degraded(query, reason string) Output {
	return FallbackNotice{Query: query}
}
