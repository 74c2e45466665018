package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/conversations"
	"github.com/JaimeStill/sage/internal/notes"
	"github.com/JaimeStill/sage/internal/prompts"
)

// AuditSink receives the reasoning trace of a completed run. Sink failures
// never fail the run; the record stage logs and continues.
type AuditSink interface {
	Record(ctx context.Context, queryID uuid.UUID, query string, steps []ReasoningStep) error
}

// Runtime bundles the dependencies that pipeline nodes require.
// It is constructed by higher-level composition code from Infrastructure and
// Domain systems.
type Runtime struct {
	Completion    completion.Service
	Prompts       prompts.System
	Conversations conversations.System
	Notes         notes.System
	Audit         AuditSink
	Logger        *slog.Logger

	// MaxAttempts is the per-call completion budget, inclusive of the first
	// attempt. Non-positive values fall back to the completion default.
	MaxAttempts int
	// ContextLimit caps how many related prior records retrieval gathers.
	ContextLimit int
	// HistoryLimit caps how many recent same-session turns retrieval gathers.
	HistoryLimit int
}
