package completion_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/sage/internal/completion"
)

// scriptedBackend replays canned responses in order, recording the prompts
// it was called with.
type scriptedBackend struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (b *scriptedBackend) Generate(_ context.Context, prompt string) (string, error) {
	i := b.calls
	b.calls++
	b.prompts = append(b.prompts, prompt)

	if i < len(b.errs) && b.errs[i] != nil {
		return "", b.errs[i]
	}
	if i < len(b.responses) {
		return b.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func schema() *completion.Schema {
	return &completion.Schema{
		Name: "answer",
		Fields: []completion.Field{
			{Name: "topic", Type: completion.FieldString, Required: true},
		},
	}
}

func TestCompleteFirstAttempt(t *testing.T) {
	backend := &scriptedBackend{responses: []string{`{"topic": "graphs"}`}}
	svc := completion.New(backend, discard())

	outcome, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 3)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if outcome.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", outcome.Attempts)
	}
	if outcome.Values["topic"] != "graphs" {
		t.Errorf("topic = %v, want graphs", outcome.Values["topic"])
	}
}

func TestCompleteRecoversWithinBudget(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		"not json at all",
		`{"wrong": true}`,
		`{"topic": "routing"}`,
	}}
	svc := completion.New(backend, discard())

	outcome, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 3)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if outcome.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", outcome.Attempts)
	}
}

func TestCompleteCorrectionPrompt(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		`{"wrong": true}`,
		`{"topic": "ok"}`,
	}}
	svc := completion.New(backend, discard())

	if _, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "original prompt",
		Schema: schema(),
	}, 3); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if len(backend.prompts) != 2 {
		t.Fatalf("backend calls = %d, want 2", len(backend.prompts))
	}

	correction := backend.prompts[1]
	for _, want := range []string{"original prompt", `{"wrong": true}`, "Problems:", "topic"} {
		if !strings.Contains(correction, want) {
			t.Errorf("correction prompt missing %q:\n%s", want, correction)
		}
	}
}

func TestCompleteExhaustsBudget(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		"bad", "bad", "bad", "bad", "bad",
	}}
	svc := completion.New(backend, discard())

	_, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 3)
	if err == nil {
		t.Fatal("Complete() error = nil, want exhaustion")
	}

	if !errors.Is(err, completion.ErrRetriesExhausted) {
		t.Errorf("error does not match ErrRetriesExhausted: %v", err)
	}

	var ee *completion.ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("error type = %T, want *ExhaustedError", err)
	}

	if ee.Attempts != 3 {
		t.Errorf("Attempts = %d, want exactly the budget", ee.Attempts)
	}
	if backend.calls != 3 {
		t.Errorf("backend calls = %d, want 3", backend.calls)
	}
	if !errors.Is(err, completion.ErrSchemaInvalid) {
		t.Error("exhaustion does not unwrap to the last attempt's failure")
	}
}

func TestCompleteBackendFailureRetriesOriginal(t *testing.T) {
	boom := errors.New("connection refused")
	backend := &scriptedBackend{
		responses: []string{"", `{"topic": "ok"}`},
		errs:      []error{boom, nil},
	}
	svc := completion.New(backend, discard())

	outcome, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 3)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if outcome.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", outcome.Attempts)
	}

	// No output to correct, so the retry re-sends the request prompt.
	if backend.prompts[1] != "explain" {
		t.Errorf("retry prompt = %q, want original prompt", backend.prompts[1])
	}
}

func TestCompleteBackendFailureExhaustion(t *testing.T) {
	boom := errors.New("connection refused")
	backend := &scriptedBackend{
		errs: []error{boom, boom, boom},
	}
	svc := completion.New(backend, discard())

	_, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 3)
	if err == nil {
		t.Fatal("Complete() error = nil, want exhaustion")
	}

	if !errors.Is(err, completion.ErrBackendUnavailable) {
		t.Errorf("error does not unwrap to ErrBackendUnavailable: %v", err)
	}
}

func TestCompleteDefaultBudget(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		"bad", "bad", "bad", "bad",
	}}
	svc := completion.New(backend, discard())

	_, err := svc.Complete(context.Background(), completion.Request{
		Prompt: "explain",
		Schema: schema(),
	}, 0)

	var ee *completion.ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("error type = %T, want *ExhaustedError", err)
	}

	if ee.Attempts != completion.DefaultMaxAttempts {
		t.Errorf("Attempts = %d, want default budget %d", ee.Attempts, completion.DefaultMaxAttempts)
	}
}

func TestDecode(t *testing.T) {
	type answer struct {
		Topic string `json:"topic"`
	}

	outcome := &completion.Outcome{
		Values:   map[string]any{"topic": "caching"},
		Attempts: 1,
	}

	got, err := completion.Decode[answer](outcome)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Topic != "caching" {
		t.Errorf("Topic = %q, want caching", got.Topic)
	}
}
