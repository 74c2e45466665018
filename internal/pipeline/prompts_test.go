package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"within limit", "short", 10, "short"},
		{"at limit", "exact", 5, "exact"},
		{"over limit", "long answer", 4, "long..."},
		{"multibyte at boundary", "aaahéllo", 5, "aaah..."},
		{"multibyte kept when whole", "aaahéllo", 6, "aaahé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.limit)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.input, tt.limit, got)
			}
		})
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	input := strings.Repeat("é", 50)

	for limit := 0; limit <= len(input); limit++ {
		if got := truncate(input, limit); !utf8.ValidString(got) {
			t.Errorf("truncate at limit %d produced invalid UTF-8: %q", limit, got)
		}
	}
}
