package pipeline

import (
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// extract pulls a typed value out of the shared state bag, converting a
// missing key or mismatched type into ErrPipelineState.
func extract[T any](s state.State, key string) (T, error) {
	var zero T

	val, ok := s.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: missing %s", ErrPipelineState, key)
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is not %T", ErrPipelineState, key, zero)
	}

	return typed, nil
}

func extractString(s state.State, key string) (string, error) {
	return extract[string](s, key)
}

// appendStep adds one reasoning step to the run's trace. A missing trace
// starts a new one, so nodes never have to seed the key.
func appendStep(s state.State, step ReasoningStep) state.State {
	steps, _ := extract[[]ReasoningStep](s, KeySteps)
	return s.Set(KeySteps, append(steps, step))
}

// appendTools adds tool names to the run's tool usage record, skipping
// duplicates so repeated invocations report once.
func appendTools(s state.State, names ...string) state.State {
	tools, _ := extract[[]string](s, KeyTools)

	for _, name := range names {
		seen := false
		for _, t := range tools {
			if t == name {
				seen = true
				break
			}
		}
		if !seen {
			tools = append(tools, name)
		}
	}

	return s.Set(KeyTools, tools)
}
