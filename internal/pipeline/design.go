package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/prompts"
)

// DesignAdvice is the design specialist's structured answer.
type DesignAdvice struct {
	Patterns       []string `json:"patterns"`
	Recommendation string   `json:"recommendation"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
}

func (DesignAdvice) Kind() string { return "design" }

var designSchema = &completion.Schema{
	Name: "design_advice",
	Fields: []completion.Field{
		{Name: "patterns", Type: completion.FieldStringArray, Required: true, Description: "applicable architecture patterns"},
		{Name: "recommendation", Type: completion.FieldString, Required: true, Description: "the recommended approach and why"},
		{Name: "pros", Type: completion.FieldStringArray, Required: true},
		{Name: "cons", Type: completion.FieldStringArray, Required: true},
	},
}

type designSpecialist struct{}

func (designSpecialist) Label() Label { return LabelDesign }

func (designSpecialist) Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageDesign, contextSection(qc), "Design question:\n"+query)
	if err != nil {
		return nil, nil, fmt.Errorf("design: %w", err)
	}

	outcome, err := rt.Completion.Complete(ctx, completion.Request{
		Prompt: prompt,
		Schema: designSchema,
	}, rt.MaxAttempts)
	if err != nil {
		return nil, nil, fmt.Errorf("design: %w", err)
	}

	out, err := completion.Decode[DesignAdvice](outcome)
	if err != nil {
		return nil, nil, fmt.Errorf("design: %w", err)
	}

	return out, nil, nil
}

func (designSpecialist) Degraded(query, reason string) Output {
	return DesignAdvice{
		Recommendation: "Structured design advice could not be produced for this query: " + reason,
	}
}
