package audit_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/internal/audit"
	"github.com/JaimeStill/sage/internal/pipeline"
	"github.com/JaimeStill/sage/pkg/lifecycle"
	"github.com/JaimeStill/sage/pkg/storage"
)

type memoryStorage struct {
	blobs map[string][]byte
}

func (m *memoryStorage) Start(_ *lifecycle.Coordinator) error { return nil }

func (m *memoryStorage) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memoryStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func (m *memoryStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.blobs[key]
	return ok, nil
}

func TestRecordAppendsTraces(t *testing.T) {
	store := &memoryStorage{blobs: map[string][]byte{}}
	sink := audit.New(store, "audit.log", slog.New(slog.DiscardHandler))
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	steps := []pipeline.ReasoningStep{
		{Thought: "t1", Action: "a1", Observation: "o1"},
		{Thought: "t2", Action: "a2", Observation: "o2"},
	}

	if err := sink.Record(ctx, first, "first query", steps); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := sink.Record(ctx, second, "second query", steps[:1]); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	content := string(store.blobs["audit.log"])

	for _, want := range []string{first.String(), second.String(), "first query", "second query", "thought: t1", "observation: o2"} {
		if !strings.Contains(content, want) {
			t.Errorf("audit log missing %q:\n%s", want, content)
		}
	}

	if strings.Index(content, first.String()) > strings.Index(content, second.String()) {
		t.Error("traces out of append order")
	}
}

func TestRecordDropsOldestTracesWhenFull(t *testing.T) {
	store := &memoryStorage{blobs: map[string][]byte{}}
	sink := audit.New(store, "audit.log", slog.New(slog.DiscardHandler))
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	bulky := []pipeline.ReasoningStep{
		{Thought: "t", Action: "a", Observation: strings.Repeat("o", 600_000)},
	}

	if err := sink.Record(ctx, first, "first query", bulky); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := sink.Record(ctx, second, "second query", bulky); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	content := string(store.blobs["audit.log"])

	if strings.Contains(content, first.String()) {
		t.Error("oldest trace survived rotation")
	}
	if !strings.Contains(content, second.String()) {
		t.Error("newest trace rotated away")
	}
}
