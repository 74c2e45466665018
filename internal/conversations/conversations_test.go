package conversations_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/sage/internal/conversations"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", conversations.ErrNotFound, http.StatusNotFound},
		{"duplicate", conversations.ErrDuplicate, http.StatusConflict},
		{"empty record", conversations.ErrEmptyRecord, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", conversations.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conversations.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  conversations.Filters
	}{
		{"empty", "", conversations.Filters{}},
		{"session", "session_id=abc", conversations.Filters{SessionID: ptr("abc")}},
		{"label", "label=theory", conversations.Filters{Label: ptr("theory")}},
		{"handler", "handler=code", conversations.Filters{Handler: ptr("code")}},
		{
			"combined",
			"session_id=abc&label=design",
			conversations.Filters{SessionID: ptr("abc"), Label: ptr("design")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery error = %v", err)
			}

			got := conversations.FiltersFromQuery(values)

			if !equalPtr(got.SessionID, tt.want.SessionID) {
				t.Errorf("SessionID = %v, want %v", got.SessionID, tt.want.SessionID)
			}
			if !equalPtr(got.Label, tt.want.Label) {
				t.Errorf("Label = %v, want %v", got.Label, tt.want.Label)
			}
			if !equalPtr(got.Handler, tt.want.Handler) {
				t.Errorf("Handler = %v, want %v", got.Handler, tt.want.Handler)
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
