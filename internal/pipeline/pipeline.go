// Package pipeline implements the classification-routed query pipeline:
// classify → retrieve → dispatch → synthesize → record. Each stage is a node
// in a linear state graph; model-dependent stages degrade rather than abort,
// so every accepted query produces a final answer.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// DefaultSession is used when a run request carries no session identifier.
const DefaultSession = "default"

// Execute runs the full pipeline for a single query. It builds the state
// graph, executes it, and extracts the Result from the final state. The only
// pre-flight failure is an empty query; once the graph starts, degraded
// stages substitute placeholder values instead of failing the run.
func Execute(ctx context.Context, rt *Runtime, query, sessionID string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if sessionID == "" {
		sessionID = DefaultSession
	}

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyQuery, query)
	initialState = initialState.Set(KeySession, sessionID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("sage-query")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("retrieve", RetrieveNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("dispatch", DispatchNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("synthesize", SynthesizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("record", RecordNode(rt)); err != nil {
		return nil, err
	}

	// The pipeline is linear; degradation happens inside nodes, not through
	// conditional routing.
	edges := [][2]string{
		{"classify", "retrieve"},
		{"retrieve", "dispatch"},
		{"dispatch", "synthesize"},
		{"synthesize", "record"},
	}

	for _, e := range edges {
		if err := graph.AddEdge(e[0], e[1], nil); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("record"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	query, err := extractString(s, KeyQuery)
	if err != nil {
		return nil, err
	}

	sessionID, err := extractString(s, KeySession)
	if err != nil {
		return nil, err
	}

	answer, err := extractString(s, KeyAnswer)
	if err != nil {
		return nil, err
	}

	class, err := extract[Classification](s, KeyClassification)
	if err != nil {
		return nil, err
	}

	steps, err := extract[[]ReasoningStep](s, KeySteps)
	if err != nil {
		return nil, err
	}

	recordID, err := extract[uuid.UUID](s, KeyRecordID)
	if err != nil {
		return nil, err
	}

	// Tools are optional; a run may complete without invoking any.
	tools, _ := extract[[]string](s, KeyTools)

	return &Result{
		Query:          query,
		SessionID:      sessionID,
		FinalAnswer:    answer,
		Classification: class,
		Steps:          steps,
		ToolsUsed:      tools,
		RecordID:       recordID,
		CompletedAt:    time.Now(),
	}, nil
}
