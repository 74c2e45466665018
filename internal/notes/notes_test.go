package notes_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/sage/internal/notes"
	"github.com/JaimeStill/sage/pkg/lifecycle"
	"github.com/JaimeStill/sage/pkg/storage"
)

// memoryStorage is an in-memory storage.System for tests.
type memoryStorage struct {
	blobs map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: map[string][]byte{}}
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
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.blobs[key]
	return ok, nil
}

func newSystem(store storage.System) notes.System {
	return notes.New(store, "notes.txt", slog.New(slog.DiscardHandler))
}

func TestReadAllEmpty(t *testing.T) {
	sys := newSystem(newMemoryStorage())

	content, err := sys.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if content != "" {
		t.Errorf("ReadAll() = %q, want empty", content)
	}
}

func TestAppendAndRead(t *testing.T) {
	sys := newSystem(newMemoryStorage())
	ctx := context.Background()

	if err := sys.Append(ctx, "first entry"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := sys.Append(ctx, "second entry"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	content, err := sys.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	firstIdx := strings.Index(content, "first entry")
	secondIdx := strings.Index(content, "second entry")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("ReadAll() missing entries:\n%s", content)
	}
	if firstIdx > secondIdx {
		t.Error("entries out of append order")
	}

	if got := notes.CountEntries(content); got != 2 {
		t.Errorf("CountEntries() = %d, want 2", got)
	}

	if !strings.Contains(content, notes.Delimiter) {
		t.Error("entries not delimited")
	}
}

func TestAppendEmpty(t *testing.T) {
	sys := newSystem(newMemoryStorage())

	err := sys.Append(context.Background(), "   ")
	if !errors.Is(err, notes.ErrEmptyNote) {
		t.Errorf("Append() error = %v, want ErrEmptyNote", err)
	}
}

func TestClear(t *testing.T) {
	sys := newSystem(newMemoryStorage())
	ctx := context.Background()

	if err := sys.Append(ctx, "entry"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := sys.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	content, err := sys.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if content != "" {
		t.Errorf("ReadAll() after Clear = %q, want empty", content)
	}

	// Clearing again is a no-op.
	if err := sys.Clear(ctx); err != nil {
		t.Errorf("Clear() on empty store error = %v", err)
	}
}

func TestCountEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"no delimiters", "free text", 0},
		{"one entry", notes.Delimiter + "\nx\n" + notes.Delimiter + "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notes.CountEntries(tt.content); got != tt.want {
				t.Errorf("CountEntries() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppendEvictsOldestWhenFull(t *testing.T) {
	store := newMemoryStorage()
	sys := newSystem(store)
	ctx := context.Background()

	first := "first entry " + strings.Repeat("x", 600_000)
	second := "second entry " + strings.Repeat("y", 600_000)

	if err := sys.Append(ctx, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := sys.Append(ctx, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	content, err := sys.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if strings.Contains(content, "first entry") {
		t.Error("oldest entry survived eviction")
	}
	if !strings.Contains(content, "second entry") {
		t.Error("newest entry evicted")
	}
	if got := notes.CountEntries(content); got != 1 {
		t.Errorf("CountEntries = %d, want 1", got)
	}
}

func TestAppendKeepsOversizedEntry(t *testing.T) {
	store := newMemoryStorage()
	sys := newSystem(store)
	ctx := context.Background()

	huge := "huge entry " + strings.Repeat("z", 2_000_000)

	if err := sys.Append(ctx, huge); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	content, err := sys.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !strings.Contains(content, "huge entry") {
		t.Error("oversized entry dropped instead of kept whole")
	}
}
