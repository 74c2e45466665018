package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// RetrieveNode returns a state node that gathers context for the specialist:
// recent same-session turns, prior records matching the query text, and the
// persistent notes content. The three lookups run concurrently. Retrieval is
// best-effort: a failed source logs and contributes nothing rather than
// failing the run.
func RetrieveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		query, err := extractString(s, KeyQuery)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w", err)
		}

		session, err := extractString(s, KeySession)
		if err != nil {
			return s, fmt.Errorf("retrieve: %w", err)
		}

		var qc Context
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			recent, err := rt.Conversations.Recent(gctx, session, rt.HistoryLimit)
			if err != nil {
				rt.Logger.WarnContext(gctx, "session history unavailable", "error", err)
				return nil
			}
			qc.Recent = recent
			return nil
		})

		g.Go(func() error {
			related, err := rt.Conversations.Search(gctx, query, rt.ContextLimit)
			if err != nil {
				rt.Logger.WarnContext(gctx, "related history unavailable", "error", err)
				return nil
			}
			qc.Related = related
			return nil
		})

		g.Go(func() error {
			content, err := rt.Notes.ReadAll(gctx)
			if err != nil {
				rt.Logger.WarnContext(gctx, "notes unavailable", "error", err)
				return nil
			}
			qc.Notes = content
			return nil
		})

		// Goroutines swallow their own errors; Wait only propagates ctx cancellation.
		if err := g.Wait(); err != nil {
			return s, fmt.Errorf("retrieve: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "retrieve node complete",
			"recent", len(qc.Recent),
			"related", len(qc.Related),
			"note_bytes", len(qc.Notes),
		)

		s = s.Set(KeyContext, qc)
		if qc.Notes != "" {
			s = appendTools(s, "note_reader")
		}
		return s, nil
	})
}
