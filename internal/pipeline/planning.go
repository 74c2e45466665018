package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/prompts"
)

// Plan is the planning specialist's structured answer.
type Plan struct {
	Goal      string   `json:"goal"`
	Steps     []string `json:"steps"`
	Timeline  string   `json:"timeline"`
	Resources []string `json:"resources"`
}

func (Plan) Kind() string { return "planning" }

var planSchema = &completion.Schema{
	Name: "plan",
	Fields: []completion.Field{
		{Name: "goal", Type: completion.FieldString, Required: true, Description: "what the plan achieves"},
		{Name: "steps", Type: completion.FieldStringArray, Required: true, Description: "ordered steps, each as 'title - description'"},
		{Name: "timeline", Type: completion.FieldString, Required: true},
		{Name: "resources", Type: completion.FieldStringArray, Required: false},
	},
}

type planningSpecialist struct{}

func (planningSpecialist) Label() Label { return LabelPlanning }

func (planningSpecialist) Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StagePlanning, contextSection(qc), "Plan for:\n"+query)
	if err != nil {
		return nil, nil, fmt.Errorf("planning: %w", err)
	}

	outcome, err := rt.Completion.Complete(ctx, completion.Request{
		Prompt: prompt,
		Schema: planSchema,
	}, rt.MaxAttempts)
	if err != nil {
		return nil, nil, fmt.Errorf("planning: %w", err)
	}

	out, err := completion.Decode[Plan](outcome)
	if err != nil {
		return nil, nil, fmt.Errorf("planning: %w", err)
	}

	var tools []ToolUse
	if err := rt.Notes.Append(ctx, planNote(out)); err != nil {
		// Note persistence is best-effort; the plan itself is still the answer.
		rt.Logger.WarnContext(ctx, "plan note not persisted", "error", err)
	} else {
		tools = append(tools, ToolUse{Name: "note_taker", Result: fmt.Sprintf("recorded plan with %d steps", len(out.Steps))})
	}

	return out, tools, nil
}

func (planningSpecialist) Degraded(query, reason string) Output {
	return Plan{
		Goal:     query,
		Timeline: "unavailable",
		Steps:    []string{"Plan generation failed - " + reason},
	}
}

// planNote renders a plan as a note entry summarizing the goal and steps.
func planNote(p Plan) string {
	var sb strings.Builder
	sb.WriteString("Plan: ")
	sb.WriteString(p.Goal)
	sb.WriteString("\nTimeline: ")
	sb.WriteString(p.Timeline)
	for i, step := range p.Steps {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, step))
	}
	return sb.String()
}
