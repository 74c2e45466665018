package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// DispatchNode returns a state node that routes the classified query to its
// specialist and runs it. Specialist failure substitutes the specialist's
// degraded placeholder so the run always reaches synthesis.
func DispatchNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		query, err := extractString(s, KeyQuery)
		if err != nil {
			return s, fmt.Errorf("dispatch: %w", err)
		}

		class, err := extract[Classification](s, KeyClassification)
		if err != nil {
			return s, fmt.Errorf("dispatch: %w", err)
		}

		qc, err := extract[Context](s, KeyContext)
		if err != nil {
			return s, fmt.Errorf("dispatch: %w", err)
		}

		sp := specialistFor(class.Label)
		degraded := false

		out, tools, err := sp.Handle(ctx, rt, query, qc)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "specialist failed, using degraded output",
				"specialist", sp.Label(),
				"error", err,
			)
			out = sp.Degraded(query, err.Error())
			degraded = true
		}

		if notice, ok := out.(FallbackNotice); ok {
			notice.Label = class.Label
			out = notice
		}

		rt.Logger.InfoContext(
			ctx, "dispatch node complete",
			"specialist", out.Kind(),
			"tools", len(tools),
			"degraded", degraded,
		)

		step := ReasoningStep{
			Thought:     fmt.Sprintf("Query classified as %s; delegate to the %s specialist", class.Label, out.Kind()),
			Action:      fmt.Sprintf("Invoke %s specialist", out.Kind()),
			Observation: dispatchObservation(qc, tools, degraded),
		}

		names := make([]string, len(tools))
		for i, t := range tools {
			names[i] = t.Name
		}

		s = s.Set(KeyOutput, out)
		s = appendStep(s, step)
		s = appendTools(s, names...)
		return s, nil
	})
}

func dispatchObservation(qc Context, tools []ToolUse, degraded bool) string {
	var parts []string

	if qc.Empty() {
		parts = append(parts, "no prior context retrieved")
	} else {
		parts = append(parts, fmt.Sprintf(
			"context: %d recent, %d related, %d note bytes",
			len(qc.Recent), len(qc.Related), len(qc.Notes),
		))
	}

	for _, t := range tools {
		parts = append(parts, fmt.Sprintf("%s: %s", t.Name, t.Result))
	}

	if degraded {
		parts = append(parts, "specialist degraded to placeholder output")
	} else {
		parts = append(parts, "structured output produced")
	}

	return strings.Join(parts, "; ")
}
