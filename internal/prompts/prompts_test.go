package prompts_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/sage/internal/prompts"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"invalid stage", prompts.ErrInvalidStage, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"wrapped invalid stage", fmt.Errorf("decode failed: %w", prompts.ErrInvalidStage), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prompts.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStages(t *testing.T) {
	stages := prompts.Stages()

	want := []prompts.Stage{
		prompts.StageClassify,
		prompts.StageTheory,
		prompts.StageDesign,
		prompts.StageCode,
		prompts.StagePlanning,
	}

	if len(stages) != len(want) {
		t.Fatalf("len(Stages()) = %d, want %d", len(stages), len(want))
	}

	for i, s := range stages {
		if s != want[i] {
			t.Errorf("Stages()[%d] = %q, want %q", i, s, want[i])
		}
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	t.Run("valid stages", func(t *testing.T) {
		for _, stage := range prompts.Stages() {
			var got prompts.Stage
			data := fmt.Sprintf("%q", stage)

			if err := json.Unmarshal([]byte(data), &got); err != nil {
				t.Errorf("Unmarshal(%s) error = %v", data, err)
			}
			if got != stage {
				t.Errorf("Unmarshal(%s) = %q, want %q", data, got, stage)
			}
		}
	})

	t.Run("invalid stage", func(t *testing.T) {
		var got prompts.Stage
		err := json.Unmarshal([]byte(`"enhance"`), &got)
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("Unmarshal error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestParseStage(t *testing.T) {
	for _, stage := range prompts.Stages() {
		got, err := prompts.ParseStage(string(stage))
		if err != nil {
			t.Errorf("ParseStage(%q) error = %v", stage, err)
		}
		if got != stage {
			t.Errorf("ParseStage(%q) = %q", stage, got)
		}
	}

	if _, err := prompts.ParseStage("finalize"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("ParseStage(finalize) error = %v, want ErrInvalidStage", err)
	}
}

func TestDefaultContent(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			instructions, err := prompts.Instructions(stage)
			if err != nil {
				t.Fatalf("Instructions(%q) error = %v", stage, err)
			}
			if instructions == "" {
				t.Errorf("Instructions(%q) is empty", stage)
			}

			spec, err := prompts.Spec(stage)
			if err != nil {
				t.Fatalf("Spec(%q) error = %v", stage, err)
			}
			if spec == "" {
				t.Errorf("Spec(%q) is empty", stage)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  prompts.Filters
	}{
		{"empty", "", prompts.Filters{}},
		{"stage only", "stage=theory", prompts.Filters{Stage: ptr(prompts.StageTheory)}},
		{"name only", "name=focus", prompts.Filters{Name: ptr("focus")}},
		{"active true", "active=true", prompts.Filters{Active: ptr(true)}},
		{"invalid active ignored", "active=banana", prompts.Filters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery error = %v", err)
			}

			got := prompts.FiltersFromQuery(values)

			if !equalPtr(got.Stage, tt.want.Stage) {
				t.Errorf("Stage = %v, want %v", got.Stage, tt.want.Stage)
			}
			if !equalPtr(got.Name, tt.want.Name) {
				t.Errorf("Name = %v, want %v", got.Name, tt.want.Name)
			}
			if !equalPtr(got.Active, tt.want.Active) {
				t.Errorf("Active = %v, want %v", got.Active, tt.want.Active)
			}
		})
	}
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
