package queries_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/conversations"
	"github.com/JaimeStill/sage/internal/pipeline"
	"github.com/JaimeStill/sage/internal/prompts"
	"github.com/JaimeStill/sage/internal/queries"
)

type fakeCompletion struct {
	outcomes map[string]map[string]any
}

func (f *fakeCompletion) Complete(_ context.Context, req completion.Request, maxAttempts int) (*completion.Outcome, error) {
	values, ok := f.outcomes[req.Schema.Name]
	if !ok {
		return nil, &completion.ExhaustedError{
			Schema:   req.Schema.Name,
			Attempts: maxAttempts,
			Last:     errors.New("no canned outcome"),
		}
	}
	return &completion.Outcome{Values: values, Attempts: 1}, nil
}

type fakePrompts struct {
	prompts.System
}

func (fakePrompts) Instructions(_ context.Context, stage prompts.Stage) (string, error) {
	return prompts.Instructions(stage)
}

func (fakePrompts) Spec(_ context.Context, stage prompts.Stage) (string, error) {
	return prompts.Spec(stage)
}

type fakeConversations struct {
	conversations.System
	created int
}

func (f *fakeConversations) Create(_ context.Context, cmd conversations.CreateConversation) (*conversations.Conversation, error) {
	f.created++
	return &conversations.Conversation{ID: uuid.New()}, nil
}

func (f *fakeConversations) Search(_ context.Context, _ string, _ int) ([]conversations.Conversation, error) {
	return nil, nil
}

func (f *fakeConversations) Recent(_ context.Context, _ string, _ int) ([]conversations.Conversation, error) {
	return nil, nil
}

type fakeNotes struct{}

func (fakeNotes) Append(_ context.Context, _ string) error { return nil }
func (fakeNotes) ReadAll(_ context.Context) (string, error) { return "", nil }
func (fakeNotes) Clear(_ context.Context) error { return nil }

type fakeAudit struct{}

func (fakeAudit) Record(_ context.Context, _ uuid.UUID, _ string, _ []pipeline.ReasoningStep) error {
	return nil
}

func newSystem(convos *fakeConversations) queries.System {
	rt := &pipeline.Runtime{
		Completion: &fakeCompletion{outcomes: map[string]map[string]any{
			"classification": {
				"label":      "theory",
				"complexity": "simple",
				"rationale":  "test",
			},
			"theory_explanation": {
				"topic":       "caching",
				"explanation": "store results for reuse",
			},
		}},
		Prompts:       fakePrompts{},
		Conversations: convos,
		Notes:         fakeNotes{},
		Audit:         fakeAudit{},
		Logger:        slog.New(slog.DiscardHandler),
		MaxAttempts:   3,
		ContextLimit:  5,
		HistoryLimit:  2,
	}

	return queries.New(rt, 10, time.Minute, slog.New(slog.DiscardHandler))
}

func TestRunCachesRepeatedQueries(t *testing.T) {
	convos := &fakeConversations{}
	sys := newSystem(convos)
	ctx := context.Background()

	first, err := sys.Run(ctx, queries.RunCommand{Query: "what is caching?"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Cached {
		t.Error("first run reported cached")
	}

	second, err := sys.Run(ctx, queries.RunCommand{Query: "What   is caching?"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !second.Cached {
		t.Error("repeated run not served from cache")
	}
	if second.FinalAnswer != first.FinalAnswer {
		t.Error("cached answer differs from original")
	}

	// The cached run skipped the pipeline, so only one record exists.
	if convos.created != 1 {
		t.Errorf("conversation records = %d, want 1", convos.created)
	}

	stats := sys.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %d hits / %d misses, want 1/1", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.Size != 1 {
		t.Errorf("Size = %d, want 1", stats.Size)
	}
}

func TestRunSessionsDoNotShareCache(t *testing.T) {
	convos := &fakeConversations{}
	sys := newSystem(convos)
	ctx := context.Background()

	if _, err := sys.Run(ctx, queries.RunCommand{Query: "same query", SessionID: "a"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	result, err := sys.Run(ctx, queries.RunCommand{Query: "same query", SessionID: "b"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Cached {
		t.Error("cache entry leaked across sessions")
	}
}

func TestRunEmptyQuery(t *testing.T) {
	sys := newSystem(&fakeConversations{})

	_, err := sys.Run(context.Background(), queries.RunCommand{Query: "  "})
	if !errors.Is(err, pipeline.ErrEmptyQuery) {
		t.Errorf("Run() error = %v, want ErrEmptyQuery", err)
	}
}

func TestRunDefaultsSession(t *testing.T) {
	sys := newSystem(&fakeConversations{})

	result, err := sys.Run(context.Background(), queries.RunCommand{Query: "no session"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.SessionID != pipeline.DefaultSession {
		t.Errorf("SessionID = %q, want %q", result.SessionID, pipeline.DefaultSession)
	}
}
