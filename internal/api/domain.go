package api

import (
	"github.com/JaimeStill/sage/internal/audit"
	"github.com/JaimeStill/sage/internal/completion"
	"github.com/JaimeStill/sage/internal/conversations"
	"github.com/JaimeStill/sage/internal/notes"
	"github.com/JaimeStill/sage/internal/pipeline"
	"github.com/JaimeStill/sage/internal/prompts"
	"github.com/JaimeStill/sage/internal/queries"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts       prompts.System
	Conversations conversations.System
	Notes         notes.System
	Queries       queries.System
}

// NewDomain creates all domain systems from the API runtime. The pipeline
// runtime is assembled here so the query system, the only entry point into
// the pipeline, carries every dependency the nodes need.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	conversationsSystem := conversations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	notesSystem := notes.New(
		runtime.Storage,
		runtime.Pipeline.NotesKey,
		runtime.Logger,
	)

	auditSink := audit.New(
		runtime.Storage,
		runtime.Pipeline.AuditKey,
		runtime.Logger,
	)

	completionService := completion.New(
		completion.NewAgentBackend(&runtime.Agent),
		runtime.Logger,
	)

	pipelineRuntime := &pipeline.Runtime{
		Completion:    completionService,
		Prompts:       promptsSystem,
		Conversations: conversationsSystem,
		Notes:         notesSystem,
		Audit:         auditSink,
		Logger:        runtime.Logger.With("system", "pipeline"),
		MaxAttempts:   runtime.Pipeline.MaxAttempts,
		ContextLimit:  runtime.Pipeline.ContextLimit,
		HistoryLimit:  runtime.Pipeline.HistoryLimit,
	}

	queriesSystem := queries.New(
		pipelineRuntime,
		runtime.Cache.Size,
		runtime.Cache.TTLDuration(),
		runtime.Logger,
	)

	return &Domain{
		Prompts:       promptsSystem,
		Conversations: conversationsSystem,
		Notes:         notesSystem,
		Queries:       queriesSystem,
	}
}
