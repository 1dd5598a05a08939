package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spendwise/expense-api/internal/core/ports"
)

func TestBuildListWhereOwnerOnly(t *testing.T) {
	where, args := buildListWhere(ports.ListExpensesFilter{OwnerID: 7})

	if where != "WHERE user_id = $1" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{int64(7)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListWhereAllFilters(t *testing.T) {
	filter := ports.ListExpensesFilter{
		OwnerID:  7,
		Search:   "taxi",
		Category: "Travel",
		DateFrom: "2024-01-01",
		DateTo:   "2024-12-31",
	}

	where, args := buildListWhere(filter)

	want := "WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2) AND category = $3 AND expense_date >= $4 AND expense_date <= $5"
	if where != want {
		t.Fatalf("where clause:\n got %q\nwant %q", where, want)
	}
	wantArgs := []any{int64(7), "%taxi%", "Travel", "2024-01-01", "2024-12-31"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args:\n got %v\nwant %v", args, wantArgs)
	}
}

func TestBuildListWhereEscapesSearchWildcards(t *testing.T) {
	cases := []struct {
		search string
		want   string
	}{
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
		{"plain", "%plain%"},
	}
	for _, tc := range cases {
		_, args := buildListWhere(ports.ListExpensesFilter{OwnerID: 7, Search: tc.search})
		if args[1] != tc.want {
			t.Errorf("search %q: pattern %q, want %q", tc.search, args[1], tc.want)
		}
	}
}

func TestBuildListWhereCategorySetWins(t *testing.T) {
	filter := ports.ListExpensesFilter{
		OwnerID:    7,
		Category:   "Food",
		Categories: []string{"Food", "Travel"},
	}

	where, args := buildListWhere(filter)

	if !strings.Contains(where, "category = ANY($2)") {
		t.Fatalf("expected ANY clause, got %q", where)
	}
	if strings.Contains(where, "category = $") && !strings.Contains(where, "ANY") {
		t.Fatalf("single-category clause must not appear alongside the set: %q", where)
	}
	if !reflect.DeepEqual(args[1], []string{"Food", "Travel"}) {
		t.Fatalf("expected category set arg, got %v", args[1])
	}
}

func TestBuildListPage(t *testing.T) {
	filter := ports.ListExpensesFilter{OwnerID: 7, Page: 3, Limit: 20}
	where, args := buildListWhere(filter)

	query, pageArgs := buildListPage(filter, where, args)

	if !strings.Contains(query, "ORDER BY expense_date DESC, id DESC") {
		t.Fatalf("missing sort order: %q", query)
	}
	if !strings.Contains(query, "LIMIT $2 OFFSET $3") {
		t.Fatalf("wrong pagination placeholders: %q", query)
	}
	wantArgs := []any{int64(7), 20, 40}
	if !reflect.DeepEqual(pageArgs, wantArgs) {
		t.Fatalf("page args:\n got %v\nwant %v", pageArgs, wantArgs)
	}
}

func TestBuildListPageDoesNotMutateSharedArgs(t *testing.T) {
	filter := ports.ListExpensesFilter{OwnerID: 7, Search: "cab", Page: 1, Limit: 10}
	where, args := buildListWhere(filter)

	before := make([]any, len(args))
	copy(before, args)

	buildListPage(filter, where, args)

	if !reflect.DeepEqual(args, before) {
		t.Fatalf("shared args mutated: %v", args)
	}
}
