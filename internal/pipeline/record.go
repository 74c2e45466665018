package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/sage/internal/conversations"
)

// RecordNode returns a state node that persists the completed run: the
// conversation record for future retrieval and the reasoning trace to the
// audit sink. Persistence is best-effort; a run that produced an answer is
// never failed by recording, the failures are logged instead.
func RecordNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		query, err := extractString(s, KeyQuery)
		if err != nil {
			return s, fmt.Errorf("record: %w", err)
		}

		session, err := extractString(s, KeySession)
		if err != nil {
			return s, fmt.Errorf("record: %w", err)
		}

		class, err := extract[Classification](s, KeyClassification)
		if err != nil {
			return s, fmt.Errorf("record: %w", err)
		}

		out, err := extract[Output](s, KeyOutput)
		if err != nil {
			return s, fmt.Errorf("record: %w", err)
		}

		answer, err := extractString(s, KeyAnswer)
		if err != nil {
			return s, fmt.Errorf("record: %w", err)
		}

		steps, _ := extract[[]ReasoningStep](s, KeySteps)

		recordID := uuid.Nil

		created, err := rt.Conversations.Create(ctx, conversations.CreateConversation{
			SessionID: session,
			Query:     query,
			Label:     string(class.Label),
			Handler:   out.Kind(),
			Answer:    answer,
		})
		if err != nil {
			rt.Logger.ErrorContext(ctx, "conversation record not persisted", "error", err)
		} else {
			recordID = created.ID
		}

		auditID := recordID
		if auditID == uuid.Nil {
			auditID = uuid.New()
		}

		if err := rt.Audit.Record(ctx, auditID, query, steps); err != nil {
			rt.Logger.WarnContext(ctx, "reasoning trace not persisted", "error", err)
		}

		rt.Logger.InfoContext(
			ctx, "record node complete",
			"record_id", recordID,
			"steps", len(steps),
		)

		s = s.Set(KeyRecordID, recordID)
		return s, nil
	})
}
