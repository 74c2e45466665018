package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/prompts"
)

// CodeSolution is the code specialist's structured answer.
type CodeSolution struct {
	Problem     string `json:"problem"`
	Explanation string `json:"explanation"`
	Code        string `json:"code"`
	Complexity  string `json:"complexity"`
}

func (CodeSolution) Kind() string { return "code" }

var codeSchema = &completion.Schema{
	Name: "code_solution",
	Fields: []completion.Field{
		{Name: "problem", Type: completion.FieldString, Required: true, Description: "restatement of the problem being solved"},
		{Name: "explanation", Type: completion.FieldString, Required: true, Description: "how the solution works"},
		{Name: "code", Type: completion.FieldString, Required: true, Description: "the implementation"},
		{Name: "complexity", Type: completion.FieldString, Required: false, Description: "time and space complexity"},
	},
}

type codeSpecialist struct{}

func (codeSpecialist) Label() Label { return LabelCode }

func (codeSpecialist) Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageCode, contextSection(qc), "Problem:\n"+query)
	if err != nil {
		return nil, nil, fmt.Errorf("code: %w", err)
	}

	outcome, err := rt.Completion.Complete(ctx, completion.Request{
		Prompt: prompt,
		Schema: codeSchema,
	}, rt.MaxAttempts)
	if err != nil {
		return nil, nil, fmt.Errorf("code: %w", err)
	}

	out, err := completion.Decode[CodeSolution](outcome)
	if err != nil {
		return nil, nil, fmt.Errorf("code: %w", err)
	}

	return out, nil, nil
}

func (codeSpecialist) Degraded(query, reason string) Output {
	return CodeSolution{
		Problem:     query,
		Explanation: "A structured solution could not be produced for this query: " + reason,
	}
}
