// Package completion wraps text-completion calls with schema validation and
// bounded retry. A request carries a prompt and a target schema; the service
// re-prompts the backend with a correction prompt on parse or validation
// failure until a conforming value is produced or the attempt budget runs out.
package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/sage/pkg/formatting"
)

// DefaultMaxAttempts is the attempt budget used when callers pass a
// non-positive value. The budget is inclusive of the first attempt.
const DefaultMaxAttempts = 3

// Backend produces raw text for a prompt. Implemented by the go-agents chat
// client in production and by stubs in tests.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request is a single schema-validated completion call. Immutable per call.
type Request struct {
	Prompt string
	Schema *Schema
}

// Outcome is the validated result of a completion call. Values contains only
// schema fields, normalized to their declared types. Attempts records how many
// backend round trips were needed, never exceeding the budget.
type Outcome struct {
	Values   map[string]any
	Attempts int
}

// Service performs schema-validated completion calls. Implementations are
// stateless and safe for concurrent use on independent requests.
type Service interface {
	Complete(ctx context.Context, req Request, maxAttempts int) (*Outcome, error)
}

type service struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a completion service over the given backend.
func New(backend Backend, logger *slog.Logger) Service {
	return &service{
		backend: backend,
		logger:  logger.With("system", "completion"),
	}
}

func (s *service) Complete(ctx context.Context, req Request, maxAttempts int) (*Outcome, error) {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	prompt := req.Prompt
	var last error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := s.backend.Generate(ctx, prompt)
		if err != nil {
			last = fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
			s.observe(ctx, req.Schema.Name, attempt, last)
			// Transport failure produced no output to correct; retry as-is.
			prompt = req.Prompt
			continue
		}

		values, err := s.parse(req.Schema, raw)
		if err == nil {
			s.logger.InfoContext(
				ctx, "completion validated",
				"schema", req.Schema.Name,
				"attempt", attempt,
			)
			return &Outcome{Values: values, Attempts: attempt}, nil
		}

		last = err
		s.observe(ctx, req.Schema.Name, attempt, err)
		prompt = correctionPrompt(req, raw, err)
	}

	return nil, &ExhaustedError{
		Schema:   req.Schema.Name,
		Attempts: maxAttempts,
		Last:     last,
	}
}

func (s *service) parse(schema *Schema, raw string) (map[string]any, error) {
	parsed, err := formatting.Parse[map[string]any](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, schema.Name, err)
	}
	return schema.Validate(parsed)
}

func (s *service) observe(ctx context.Context, schema string, attempt int, err error) {
	s.logger.WarnContext(
		ctx, "completion attempt failed",
		"schema", schema,
		"attempt", attempt,
		"error", err,
	)
}

// correctionPrompt rebuilds the request prompt with the invalid output and
// the reasons it failed, so the backend can repair its own response. Each
// correction round trip counts as one attempt.
func correctionPrompt(req Request, raw string, failure error) string {
	var sb strings.Builder
	sb.WriteString(req.Prompt)
	sb.WriteString("\n\nYour previous response could not be used:\n\n")
	sb.WriteString(strings.TrimSpace(raw))
	sb.WriteString("\n\nProblems:\n")
	sb.WriteString(failure.Error())
	sb.WriteString("\n\n")
	sb.WriteString(req.Schema.FormatInstructions())
	return sb.String()
}

// Decode converts a validated outcome into a typed value by round-tripping
// the field map through JSON. Specialists use it to map schema fields onto
// their output structs.
func Decode[T any](o *Outcome) (T, error) {
	var result T

	data, err := json.Marshal(o.Values)
	if err != nil {
		return result, fmt.Errorf("encode outcome: %w", err)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode outcome: %w", err)
	}

	return result, nil
}

// AgentBackend adapts a go-agents chat agent to the Backend interface.
// A fresh agent is created per call, matching how pipeline nodes construct
// agents elsewhere in the codebase.
type AgentBackend struct {
	cfg *gaconfig.AgentConfig
}

// NewAgentBackend creates a Backend over the given agent configuration.
func NewAgentBackend(cfg *gaconfig.AgentConfig) *AgentBackend {
	return &AgentBackend{cfg: cfg}
}

func (b *AgentBackend) Generate(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(b.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Text(), nil
}
