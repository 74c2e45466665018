package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/internal/conversations"
)

// State bag keys shared across pipeline nodes.
const (
	KeyQuery          = "query"
	KeySession        = "session_id"
	KeyClassification = "classification"
	KeyContext        = "query_context"
	KeyOutput         = "specialist_output"
	KeySteps          = "reasoning_steps"
	KeyAnswer         = "final_answer"
	KeyTools          = "tools_used"
	KeyRecordID       = "record_id"
)

// Label is a query category produced by the classify stage.
type Label string

// The four routable categories. Any other label routes to the fallback
// specialist.
const (
	LabelTheory   Label = "theory"
	LabelDesign   Label = "design"
	LabelCode     Label = "code"
	LabelPlanning Label = "planning"
)

// NormalizeLabel lowercases and trims a label for routing. It does not
// reject unknown values; routing handles those via the fallback entry.
func NormalizeLabel(s string) Label {
	return Label(strings.ToLower(strings.TrimSpace(s)))
}

// Complexity is a categorical assessment of how involved a good answer is.
type Complexity string

// Complexity levels for classified queries.
const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Classification is the classify stage's decision about a query. Immutable
// once produced; the dispatch stage reads it to select a specialist.
// Degraded marks the substituted default used when classification itself
// failed after exhausting its attempt budget.
type Classification struct {
	Label      Label      `json:"label"`
	Complexity Complexity `json:"complexity"`
	Rationale  string     `json:"rationale"`
	Degraded   bool       `json:"degraded,omitempty"`
}

// DefaultClassification is the substitute used when the classify stage
// exhausts its attempts. The pipeline continues rather than aborting.
func DefaultClassification(reason string) Classification {
	return Classification{
		Label:      LabelTheory,
		Complexity: ComplexitySimple,
		Rationale:  "classification unavailable: " + reason,
		Degraded:   true,
	}
}

// ReasoningStep is one audit record in the run's reasoning trace:
// what the stage considered, what it did, and what it observed.
// Steps have no effect on control flow.
type ReasoningStep struct {
	Thought     string `json:"thought"`
	Action      string `json:"action"`
	Observation string `json:"observation"`
}

// Context carries the material the retrieve stage gathered for the
// specialist: recent turns from the same session, prior records matching
// the query text, and the persistent notes content.
type Context struct {
	Recent  []conversations.Conversation
	Related []conversations.Conversation
	Notes   string
}

// Empty reports whether retrieval found nothing at all.
func (c Context) Empty() bool {
	return len(c.Recent) == 0 && len(c.Related) == 0 && c.Notes == ""
}

// ToolUse records one simulated tool invocation made by a specialist.
type ToolUse struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// Result is the terminal output of a pipeline run.
type Result struct {
	Query          string          `json:"query"`
	SessionID      string          `json:"session_id"`
	FinalAnswer    string          `json:"final_answer"`
	Classification Classification  `json:"classification"`
	Steps          []ReasoningStep `json:"reasoning_steps"`
	ToolsUsed      []string        `json:"tools_used"`
	RecordID       uuid.UUID       `json:"record_id"`
	CompletedAt    time.Time       `json:"completed_at"`
}
