package completion

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType identifies the primitive type a schema field accepts.
type FieldType string

// Supported field types.
const (
	FieldString      FieldType = "string"
	FieldNumber      FieldType = "number"
	FieldBoolean     FieldType = "boolean"
	FieldEnum        FieldType = "enum"
	FieldStringArray FieldType = "array"
)

// Field describes one named field in a completion schema.
// Enum lists the allowed values for FieldEnum fields and is ignored otherwise.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Enum        []string
	Description string
}

// Schema describes the structured output expected from a completion call:
// a closed set of named fields with primitive types and required flags.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldError records why a single field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Reason
}

// Validate checks values against the schema: every required field present,
// every present field coercible to its declared type. It returns a normalized
// copy containing only schema fields, or a *ValidationError describing every
// field that failed.
func (s *Schema) Validate(values map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(s.Fields))
	var failures []FieldError

	for _, f := range s.Fields {
		raw, ok := values[f.Name]
		if !ok || raw == nil {
			if f.Required {
				failures = append(failures, FieldError{f.Name, "required field missing"})
			}
			continue
		}

		v, err := coerce(f, raw)
		if err != nil {
			failures = append(failures, FieldError{f.Name, err.Error()})
			continue
		}

		normalized[f.Name] = v
	}

	if len(failures) > 0 {
		return nil, &ValidationError{Schema: s.Name, Fields: failures}
	}

	return normalized, nil
}

// FormatInstructions renders the schema as prompt text describing the exact
// JSON object the model must return. Used when building correction prompts.
func (s *Schema) FormatInstructions() string {
	var sb strings.Builder
	sb.WriteString("Respond with a JSON object containing exactly these fields:\n")

	for _, f := range s.Fields {
		sb.WriteString("- ")
		sb.WriteString(f.Name)
		sb.WriteString(" (")
		sb.WriteString(describeType(f))
		if f.Required {
			sb.WriteString(", required")
		} else {
			sb.WriteString(", optional")
		}
		sb.WriteString(")")
		if f.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(f.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Return ONLY the JSON object, no surrounding text or markdown fencing.")
	return sb.String()
}

func describeType(f Field) string {
	switch f.Type {
	case FieldEnum:
		return "one of: " + strings.Join(f.Enum, "|")
	case FieldStringArray:
		return "array of strings"
	default:
		return string(f.Type)
	}
}

func coerce(f Field, raw any) (any, error) {
	switch f.Type {
	case FieldString:
		return coerceString(raw)
	case FieldNumber:
		return coerceNumber(raw)
	case FieldBoolean:
		return coerceBoolean(raw)
	case FieldEnum:
		return coerceEnum(f, raw)
	case FieldStringArray:
		return coerceStringArray(raw)
	default:
		return nil, fmt.Errorf("unsupported field type %q", f.Type)
	}
}

func coerceString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected string, got %T", raw)
	}
}

func coerceNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}

func coerceBoolean(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", raw)
	}
}

func coerceEnum(f Field, raw any) (string, error) {
	s, err := coerceString(raw)
	if err != nil {
		return "", err
	}

	for _, allowed := range f.Enum {
		if strings.EqualFold(strings.TrimSpace(s), allowed) {
			return allowed, nil
		}
	}

	return "", fmt.Errorf("value %q not one of %s", s, strings.Join(f.Enum, "|"))
}

func coerceStringArray(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, err := coerceString(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	case string:
		// Single bare string stands in for a one-element array.
		return []string{v}, nil
	default:
		return nil, fmt.Errorf("expected array of strings, got %T", raw)
	}
}
