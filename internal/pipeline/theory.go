package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/prompts"
)

// TheoryExplanation is the theory specialist's structured answer.
type TheoryExplanation struct {
	Topic       string   `json:"topic"`
	Explanation string   `json:"explanation"`
	KeyConcepts []string `json:"key_concepts"`
	Examples    []string `json:"examples"`
	Reference   string   `json:"-"`
}

func (TheoryExplanation) Kind() string { return "theory" }

var theorySchema = &completion.Schema{
	Name: "theory_explanation",
	Fields: []completion.Field{
		{Name: "topic", Type: completion.FieldString, Required: true, Description: "the concept being explained"},
		{Name: "explanation", Type: completion.FieldString, Required: true, Description: "a clear conceptual explanation"},
		{Name: "key_concepts", Type: completion.FieldStringArray, Required: true},
		{Name: "examples", Type: completion.FieldStringArray, Required: false},
	},
}

type theorySpecialist struct{}

func (theorySpecialist) Label() Label { return LabelTheory }

func (theorySpecialist) Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageTheory, contextSection(qc), "Explain:\n"+query)
	if err != nil {
		return nil, nil, fmt.Errorf("theory: %w", err)
	}

	outcome, err := rt.Completion.Complete(ctx, completion.Request{
		Prompt: prompt,
		Schema: theorySchema,
	}, rt.MaxAttempts)
	if err != nil {
		return nil, nil, fmt.Errorf("theory: %w", err)
	}

	out, err := completion.Decode[TheoryExplanation](outcome)
	if err != nil {
		return nil, nil, fmt.Errorf("theory: %w", err)
	}

	out.Reference = lookupKnowledge(out.Topic)
	tools := []ToolUse{{Name: "knowledge_base", Result: truncate(out.Reference, 120)}}

	return out, tools, nil
}

func (theorySpecialist) Degraded(query, reason string) Output {
	return TheoryExplanation{
		Topic:       query,
		Explanation: "A structured explanation could not be produced for this query: " + reason,
	}
}
