package conversations

import (
	"strings"
	"testing"

	"github.com/JaimeStill/sage/pkg/query"
)

func TestDefaultSortBreaksTimestampTies(t *testing.T) {
	// Bounded reads over an unchanged table must return the same rows on
	// every call, so ordering cannot stop at a non-unique timestamp.
	sql, _ := query.NewBuilder(projection, defaultSort...).BuildPage(1, 5)

	want := "ORDER BY c.created_at DESC, c.id DESC"
	if !strings.Contains(sql, want) {
		t.Errorf("BuildPage() sql = %q, want ordering %q", sql, want)
	}
}
