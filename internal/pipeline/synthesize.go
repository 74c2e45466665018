package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// SynthesizeNode returns a state node that composes the specialist's
// structured output into the final human-readable answer. Synthesis is a
// pure string transformation with no model call, so it cannot fail for any
// output shape the dispatch stage can produce.
func SynthesizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		out, err := extract[Output](s, KeyOutput)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		answer := composeAnswer(out)

		rt.Logger.InfoContext(
			ctx, "synthesize node complete",
			"specialist", out.Kind(),
			"answer_bytes", len(answer),
		)

		step := ReasoningStep{
			Thought:     fmt.Sprintf("Compose the %s output into a final answer", out.Kind()),
			Action:      "Synthesize final answer",
			Observation: fmt.Sprintf("Produced %d byte answer", len(answer)),
		}

		s = s.Set(KeyAnswer, answer)
		s = appendStep(s, step)
		return s, nil
	})
}

// composeAnswer renders one answer per output shape. The type switch is
// exhaustive over the closed Output set; the default arm only fires if a new
// shape is added without a composition rule.
func composeAnswer(out Output) string {
	switch v := out.(type) {
	case TheoryExplanation:
		return composeTheory(v)
	case DesignAdvice:
		return composeDesign(v)
	case CodeSolution:
		return composeCode(v)
	case Plan:
		return composePlan(v)
	case FallbackNotice:
		return composeFallback(v)
	default:
		return fmt.Sprintf("No composition rule for %s output.", out.Kind())
	}
}

func composeTheory(t TheoryExplanation) string {
	var sb strings.Builder
	sb.WriteString(t.Topic)
	sb.WriteString("\n\n")
	sb.WriteString(t.Explanation)

	if len(t.KeyConcepts) > 0 {
		sb.WriteString("\n\nKey concepts:\n")
		writeList(&sb, t.KeyConcepts)
	}

	if len(t.Examples) > 0 {
		sb.WriteString("\nExamples:\n")
		writeList(&sb, t.Examples)
	}

	if t.Reference != "" && t.Reference != knowledgeMiss {
		sb.WriteString("\nReference:\n")
		sb.WriteString(t.Reference)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func composeDesign(d DesignAdvice) string {
	var sb strings.Builder
	sb.WriteString(d.Recommendation)

	if len(d.Patterns) > 0 {
		sb.WriteString("\n\nApplicable patterns:\n")
		writeList(&sb, d.Patterns)
	}

	if len(d.Pros) > 0 {
		sb.WriteString("\nPros:\n")
		writeList(&sb, d.Pros)
	}

	if len(d.Cons) > 0 {
		sb.WriteString("\nCons:\n")
		writeList(&sb, d.Cons)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func composeCode(c CodeSolution) string {
	var sb strings.Builder
	sb.WriteString(c.Explanation)

	if c.Code != "" {
		sb.WriteString("\n\n```\n")
		sb.WriteString(strings.TrimRight(c.Code, "\n"))
		sb.WriteString("\n```")
	}

	if c.Complexity != "" {
		sb.WriteString("\n\nComplexity: ")
		sb.WriteString(c.Complexity)
	}

	return sb.String()
}

func composePlan(p Plan) string {
	var sb strings.Builder
	sb.WriteString("Goal: ")
	sb.WriteString(p.Goal)
	sb.WriteString("\nTimeline: ")
	sb.WriteString(p.Timeline)

	if len(p.Steps) > 0 {
		sb.WriteString("\n\nSteps:\n")
		for i, step := range p.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	if len(p.Resources) > 0 {
		sb.WriteString("\nResources:\n")
		writeList(&sb, p.Resources)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func composeFallback(f FallbackNotice) string {
	return fmt.Sprintf(
		"No specialist is registered for the %q category, so this query could not "+
			"be answered directly: %s. Try rephrasing it as a conceptual, design, "+
			"coding, or planning question.",
		f.Label, f.Query,
	)
}

func writeList(sb *strings.Builder, items []string) {
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}
