package events

import (
	"context"
	"strings"
	"testing"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery(Filter{}, 100)

	if strings.Contains(query, "WHERE") {
		t.Fatalf("unfiltered query must have no WHERE clause, got %s", query)
	}
	if strings.Contains(query, "::uuid") {
		t.Fatalf("unfiltered query must not cast a parameter to uuid, got %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected only the limit argument, got %v", args)
	}
	if args[0] != 100 {
		t.Fatalf("expected limit 100, got %v", args[0])
	}
}

func TestBuildListQueryEmployeeFilter(t *testing.T) {
	query, args := buildListQuery(Filter{EmployeeID: "3f1b0c9a-0000-0000-0000-000000000001"}, 50)

	if !strings.Contains(query, "employee_id = $1::uuid") {
		t.Fatalf("expected employee predicate, got %s", query)
	}
	if len(args) != 2 || args[0] != "3f1b0c9a-0000-0000-0000-000000000001" || args[1] != 50 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildListQueryBothFilters(t *testing.T) {
	query, args := buildListQuery(Filter{EmployeeID: "abc", EventType: "punch.recorded"}, 10)

	if !strings.Contains(query, "employee_id = $1::uuid") || !strings.Contains(query, "event_type = $2") {
		t.Fatalf("expected both predicates, got %s", query)
	}
	if !strings.Contains(query, "LIMIT $3") {
		t.Fatalf("limit placeholder must follow the filters, got %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestRequestMetaRoundTrip(t *testing.T) {
	ctx := WithMeta(context.Background(), RequestMeta{RequestID: "req-1", IP: "10.0.0.9"})

	meta := MetaFrom(ctx)
	if meta.RequestID != "req-1" || meta.IP != "10.0.0.9" {
		t.Fatalf("unexpected meta %+v", meta)
	}

	if got := MetaFrom(context.Background()); got != (RequestMeta{}) {
		t.Fatalf("bare context must carry empty meta, got %+v", got)
	}
}
