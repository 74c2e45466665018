package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/prompts"
)

var classificationSchema = &completion.Schema{
	Name: "classification",
	Fields: []completion.Field{
		{
			Name:     "label",
			Type:     completion.FieldEnum,
			Required: true,
			Enum:     []string{"theory", "design", "code", "planning"},
		},
		{
			Name:     "complexity",
			Type:     completion.FieldEnum,
			Required: true,
			Enum:     []string{"simple", "medium", "complex"},
		},
		{
			Name:        "rationale",
			Type:        completion.FieldString,
			Required:    true,
			Description: "one sentence explaining the category choice",
		},
	},
}

type classifyResponse struct {
	Label      string `json:"label"`
	Complexity string `json:"complexity"`
	Rationale  string `json:"rationale"`
}

// ClassifyNode returns a state node that categorizes the query through a
// schema-validated completion call. When the attempt budget is exhausted it
// substitutes the default classification instead of failing the run, so
// every query still reaches a specialist.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		query, err := extractString(s, KeyQuery)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		class := classify(ctx, rt, query)

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"label", class.Label,
			"complexity", class.Complexity,
			"degraded", class.Degraded,
		)

		step := ReasoningStep{
			Thought:     fmt.Sprintf("Determine which specialist should answer: %q", truncate(query, 80)),
			Action:      fmt.Sprintf("Classify query into one of %d categories", len(classificationSchema.Fields[0].Enum)),
			Observation: fmt.Sprintf("Classified as %s (%s): %s", class.Label, class.Complexity, class.Rationale),
		}

		s = s.Set(KeyClassification, class)
		s = appendStep(s, step)
		return s, nil
	})
}

func classify(ctx context.Context, rt *Runtime, query string) Classification {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageClassify, "Query:\n"+query)
	if err != nil {
		rt.Logger.WarnContext(ctx, "classification prompt unavailable", "error", err)
		return DefaultClassification(err.Error())
	}

	outcome, err := rt.Completion.Complete(ctx, completion.Request{
		Prompt: prompt,
		Schema: classificationSchema,
	}, rt.MaxAttempts)
	if err != nil {
		rt.Logger.WarnContext(ctx, "classification failed, using default", "error", err)
		return DefaultClassification(err.Error())
	}

	resp, err := completion.Decode[classifyResponse](outcome)
	if err != nil {
		rt.Logger.WarnContext(ctx, "classification decode failed, using default", "error", err)
		return DefaultClassification(err.Error())
	}

	return Classification{
		Label:      NormalizeLabel(resp.Label),
		Complexity: Complexity(resp.Complexity),
		Rationale:  resp.Rationale,
	}
}
