package completion_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/sage/internal/completion"
)

func testSchema() *completion.Schema {
	return &completion.Schema{
		Name: "test",
		Fields: []completion.Field{
			{Name: "label", Type: completion.FieldEnum, Required: true, Enum: []string{"theory", "design"}},
			{Name: "score", Type: completion.FieldNumber, Required: true},
			{Name: "summary", Type: completion.FieldString, Required: true},
			{Name: "tags", Type: completion.FieldStringArray},
			{Name: "verified", Type: completion.FieldBoolean},
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	t.Run("valid values normalize", func(t *testing.T) {
		values := map[string]any{
			"label":    "THEORY",
			"score":    float64(3),
			"summary":  "fine",
			"tags":     []any{"a", "b"},
			"verified": "true",
		}

		got, err := testSchema().Validate(values)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}

		if got["label"] != "theory" {
			t.Errorf("label = %v, want canonical enum value", got["label"])
		}
		if got["score"] != float64(3) {
			t.Errorf("score = %v, want 3", got["score"])
		}
		if got["verified"] != true {
			t.Errorf("verified = %v, want true", got["verified"])
		}

		tags, ok := got["tags"].([]string)
		if !ok || len(tags) != 2 {
			t.Errorf("tags = %v, want two strings", got["tags"])
		}
	})

	t.Run("extra fields dropped", func(t *testing.T) {
		values := map[string]any{
			"label":   "design",
			"score":   1.5,
			"summary": "ok",
			"bogus":   "dropped",
		}

		got, err := testSchema().Validate(values)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}

		if _, ok := got["bogus"]; ok {
			t.Error("Validate() kept field outside the schema")
		}
	})

	t.Run("collects every failure", func(t *testing.T) {
		values := map[string]any{
			"label": "banana",
			"score": "not a number",
		}

		_, err := testSchema().Validate(values)
		if err == nil {
			t.Fatal("Validate() error = nil, want validation failure")
		}

		var ve *completion.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Validate() error type = %T, want *ValidationError", err)
		}

		// label invalid, score invalid, summary missing.
		if len(ve.Fields) != 3 {
			t.Errorf("len(Fields) = %d, want 3: %v", len(ve.Fields), ve.Fields)
		}

		if !errors.Is(err, completion.ErrSchemaInvalid) {
			t.Error("validation error does not match ErrSchemaInvalid")
		}
	})

	t.Run("number coercion from string", func(t *testing.T) {
		values := map[string]any{
			"label":   "theory",
			"score":   "2.5",
			"summary": "ok",
		}

		got, err := testSchema().Validate(values)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if got["score"] != 2.5 {
			t.Errorf("score = %v, want 2.5", got["score"])
		}
	})

	t.Run("bare string accepted for array", func(t *testing.T) {
		values := map[string]any{
			"label":   "theory",
			"score":   float64(1),
			"summary": "ok",
			"tags":    "solo",
		}

		got, err := testSchema().Validate(values)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}

		tags, ok := got["tags"].([]string)
		if !ok || len(tags) != 1 || tags[0] != "solo" {
			t.Errorf("tags = %v, want [solo]", got["tags"])
		}
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		values := map[string]any{
			"label":   "theory",
			"score":   float64(1),
			"summary": "ok",
		}

		if _, err := testSchema().Validate(values); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
	})
}

func TestFormatInstructions(t *testing.T) {
	text := testSchema().FormatInstructions()

	for _, want := range []string{"label", "one of: theory|design", "required", "optional", "JSON object"} {
		if !strings.Contains(text, want) {
			t.Errorf("FormatInstructions() missing %q:\n%s", want, text)
		}
	}
}
