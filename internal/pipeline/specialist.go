package pipeline

import "context"

// Output is the structured product of one specialist. The set of
// implementations is closed: one shape per specialist plus the fallback
// notice. Synthesis composes the final answer from whichever shape the
// dispatch stage produced.
type Output interface {
	// Kind names the specialist that produced the output.
	Kind() string
}

// Specialist answers queries for one category. Handle returns the structured
// output and any tool invocations made along the way. When Handle fails,
// dispatch substitutes Degraded so the run still reaches synthesis.
type Specialist interface {
	Label() Label
	Handle(ctx context.Context, rt *Runtime, query string, qc Context) (Output, []ToolUse, error)
	Degraded(query string, reason string) Output
}

// routing is the closed dispatch table. specialistFor is total: labels
// outside the table resolve to the fallback specialist rather than erroring.
var routing = map[Label]Specialist{
	LabelTheory:   theorySpecialist{},
	LabelDesign:   designSpecialist{},
	LabelCode:     codeSpecialist{},
	LabelPlanning: planningSpecialist{},
}

func specialistFor(label Label) Specialist {
	if sp, ok := routing[NormalizeLabel(string(label))]; ok {
		return sp
	}
	return fallbackSpecialist{}
}
