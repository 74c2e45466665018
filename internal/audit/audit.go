// Package audit persists the reasoning trace of completed query runs.
// Traces are appended to a single text blob and mirrored to the structured
// log, so a run's decisions can be reviewed after the fact.
package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/internal/pipeline"
	"github.com/JaimeStill/sage/pkg/storage"
)

// maxLogBytes caps the audit blob. Once an append would exceed it the
// oldest traces are dropped; a single oversized trace is kept whole.
const maxLogBytes = 1 << 20

// System appends reasoning traces to the audit blob. It implements
// pipeline.AuditSink.
type System struct {
	storage storage.System
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

// New creates an audit sink persisting to the given blob key.
func New(store storage.System, key string, logger *slog.Logger) *System {
	return &System{
		storage: store,
		key:     key,
		logger:  logger.With("system", "audit"),
	}
}

// Record appends one run's trace to the audit blob and logs each step.
func (s *System) Record(ctx context.Context, queryID uuid.UUID, query string, steps []pipeline.ReasoningStep) error {
	for i, step := range steps {
		s.logger.InfoContext(
			ctx, "reasoning step",
			"query_id", queryID,
			"step", i+1,
			"thought", step.Thought,
			"action", step.Action,
			"observation", step.Observation,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(ctx)
	if err != nil {
		return err
	}

	entry := renderTrace(queryID, query, steps, time.Now().UTC())
	combined := dropOldest(existing+entry, maxLogBytes)

	if err := s.storage.Upload(ctx, s.key, strings.NewReader(combined), "text/plain"); err != nil {
		return fmt.Errorf("persist audit trace: %w", err)
	}

	return nil
}

// dropOldest removes whole traces from the front until content fits max.
// Traces end with a blank line, so the first "\n\n" bounds the oldest one.
func dropOldest(content string, max int) string {
	for len(content) > max {
		idx := strings.Index(content, "\n\n")
		if idx < 0 || idx+2 >= len(content) {
			break
		}
		content = content[idx+2:]
	}
	return content
}

func (s *System) read(ctx context.Context) (string, error) {
	rc, err := s.storage.Download(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read audit log: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read audit log: %w", err)
	}

	return string(data), nil
}

func renderTrace(queryID uuid.UUID, query string, steps []pipeline.ReasoningStep, at time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] query %s: %s\n", at.Format(time.RFC3339), queryID, query))
	for i, step := range steps {
		sb.WriteString(fmt.Sprintf("  %d. thought: %s\n", i+1, step.Thought))
		sb.WriteString(fmt.Sprintf("     action: %s\n", step.Action))
		sb.WriteString(fmt.Sprintf("     observation: %s\n", step.Observation))
	}
	sb.WriteString("\n")

	return sb.String()
}
