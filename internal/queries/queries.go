// Package queries implements the run surface: the entry point that accepts a
// query, runs it through the pipeline, and caches completed results.
package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/sage/internal/pipeline"
)

// RunCommand carries the data needed to run one query.
type RunCommand struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// RunResult wraps a pipeline result with cache provenance.
type RunResult struct {
	*pipeline.Result
	Cached bool `json:"cached"`
}

// System defines the public contract for query runs.
type System interface {
	Handler() *Handler
	Run(ctx context.Context, cmd RunCommand) (*RunResult, error)
	Stats() CacheStats
}

type system struct {
	rt     *pipeline.Runtime
	cache  *cache
	logger *slog.Logger
}

// New creates the query run system over a pipeline runtime with a result
// cache of the given size and entry lifetime.
func New(rt *pipeline.Runtime, cacheSize int, cacheTTL time.Duration, logger *slog.Logger) System {
	return &system{
		rt:     rt,
		cache:  newCache(cacheSize, cacheTTL),
		logger: logger.With("system", "queries"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Run executes the pipeline for a query, serving repeated queries from the
// cache. Cached runs skip the pipeline entirely, so they add no conversation
// record and no reasoning trace.
func (s *system) Run(ctx context.Context, cmd RunCommand) (*RunResult, error) {
	if strings.TrimSpace(cmd.Query) == "" {
		return nil, pipeline.ErrEmptyQuery
	}

	if cmd.SessionID == "" {
		cmd.SessionID = pipeline.DefaultSession
	}

	key := cacheKey(cmd.SessionID, cmd.Query)
	if res, ok := s.cache.get(key); ok {
		s.logger.InfoContext(ctx, "query served from cache", "session", cmd.SessionID)
		return &RunResult{Result: res, Cached: true}, nil
	}

	res, err := pipeline.Execute(ctx, s.rt, cmd.Query, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	s.cache.add(key, res)

	s.logger.InfoContext(
		ctx, "query run complete",
		"session", cmd.SessionID,
		"label", res.Classification.Label,
		"record_id", res.RecordID,
	)

	return &RunResult{Result: res}, nil
}

func (s *system) Stats() CacheStats {
	return s.cache.stats()
}
