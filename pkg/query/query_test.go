package query_test

import (
	"testing"

	"github.com/JaimeStill/sage/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "conversations", "c").
		Project("id", "id").
		Project("session_id", "sessionId").
		Project("created_at", "createdAt")
}

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	got := p.Table()
	want := "public.conversations c"
	if got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "c.id, c.session_id, c.created_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "sessionId", "c.session_id"},
		{"mapped camel", "createdAt", "c.created_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "sessionId", []query.SortField{{Field: "sessionId"}}},
		{"single descending", "-createdAt", []query.SortField{{Field: "createdAt", Descending: true}}},
		{
			"multiple mixed",
			"sessionId,-createdAt",
			[]query.SortField{
				{Field: "sessionId"},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			"empty parts skipped",
			"sessionId,,createdAt",
			[]query.SortField{
				{Field: "sessionId"},
				{Field: "createdAt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.conversations c"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "createdAt", Descending: true})
	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT c.id, c.session_id, c.created_at FROM public.conversations c ORDER BY c.created_at DESC LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("id", "abc-123")

	wantSQL := "SELECT c.id, c.session_id, c.created_at FROM public.conversations c WHERE c.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v, want [abc-123]", args)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	session := "default"
	b := query.NewBuilder(testProjection()).WhereEquals("sessionId", &session)
	sql, args := b.BuildPage(1, 5)

	wantSQL := "SELECT c.id, c.session_id, c.created_at FROM public.conversations c WHERE c.session_id = $1 LIMIT 5 OFFSET 0"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != &session {
		t.Errorf("BuildPage() args = %v, want [&session]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	var session *string
	b := query.NewBuilder(testProjection()).WhereEquals("sessionId", session)
	sql, args := b.Build()

	wantSQL := "SELECT c.id, c.session_id, c.created_at FROM public.conversations c"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	term := "caching"
	b := query.NewBuilder(testProjection()).WhereSearch(&term, "sessionId", "id")
	sql, args := b.Build()

	wantSQL := "SELECT c.id, c.session_id, c.created_at FROM public.conversations c WHERE (c.session_id ILIKE $1 OR c.id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%caching%" || args[1] != "%caching%" {
		t.Errorf("Build() args = %v, want two %%caching%% patterns", args)
	}
}
