// Package notes implements the persistent scratch-pad the planning
// specialist writes to and the retrieve stage reads from. Notes live in a
// single blob as delimited text entries, surviving across sessions.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/JaimeStill/sage/pkg/storage"
)

// Delimiter separates note entries in the stored blob.
const Delimiter = "========================================"

// maxNotesBytes caps the note blob. Once an append would exceed it the
// oldest entries are evicted; a single oversized entry is kept whole.
const maxNotesBytes = 1 << 20

// System defines the public contract for note operations. Append and ReadAll
// are safe for concurrent use within one process; the blob is the unit of
// persistence, so each Append rewrites it whole.
type System interface {
	Append(ctx context.Context, content string) error
	ReadAll(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type blobNotes struct {
	storage storage.System
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

// New creates a note store persisting to the given blob key.
func New(store storage.System, key string, logger *slog.Logger) System {
	return &blobNotes{
		storage: store,
		key:     key,
		logger:  logger.With("system", "notes"),
	}
}

// Append adds one delimited entry to the note blob. The blob is read,
// extended, and rewritten under the lock; entries are never reordered,
// and the oldest are evicted only when the blob outgrows maxNotesBytes.
func (n *blobNotes) Append(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyNote
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	existing, err := n.read(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(existing)
	sb.WriteString(Delimiter)
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(Delimiter)
	sb.WriteString("\n")

	combined := evictOldest(sb.String(), maxNotesBytes)

	if err := n.storage.Upload(ctx, n.key, strings.NewReader(combined), "text/plain"); err != nil {
		return fmt.Errorf("persist notes: %w", err)
	}

	n.logger.InfoContext(ctx, "note appended", "bytes", len(content))
	return nil
}

// ReadAll returns the full note content. A store with no note blob yet
// reads as empty, not as an error.
func (n *blobNotes) ReadAll(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.read(ctx)
}

// Clear removes the note blob entirely. Clearing an empty store is a no-op.
func (n *blobNotes) Clear(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.storage.Delete(ctx, n.key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("clear notes: %w", err)
	}

	n.logger.InfoContext(ctx, "notes cleared")
	return nil
}

func (n *blobNotes) read(ctx context.Context) (string, error) {
	rc, err := n.storage.Download(ctx, n.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read notes: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}

	return string(data), nil
}

// evictOldest removes whole entries from the front until content fits max.
// The newest entry survives even when it alone exceeds max.
func evictOldest(content string, max int) string {
	sep := Delimiter + "\n"

	for len(content) > max {
		opening := strings.Index(content, sep)
		if opening < 0 {
			break
		}
		closing := strings.Index(content[opening+len(sep):], sep)
		if closing < 0 {
			break
		}

		end := opening + len(sep) + closing + len(sep)
		if end >= len(content) {
			break
		}
		content = content[end:]
	}

	return content
}

// CountEntries reports how many delimited entries the content holds.
func CountEntries(content string) int {
	return strings.Count(content, Delimiter) / 2
}
