package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDateDayFormat(t *testing.T) {
	parsed, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("expected %v, got %v", want, parsed)
	}
}

func TestParseDateRFC3339Fallback(t *testing.T) {
	parsed, err := ParseDate("2026-03-10T08:30:00Z")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Hour() != 8 || parsed.Minute() != 30 {
		t.Fatalf("expected 08:30, got %v", parsed)
	}
}

func TestParseDateEmptyIsZero(t *testing.T) {
	parsed, err := ParseDate("")
	if err != nil {
		t.Fatalf("empty value must not error, got %v", err)
	}
	if !parsed.IsZero() {
		t.Fatalf("expected zero time, got %v", parsed)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatal("expected garbage date to fail")
	}
}

func TestFormatDay(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 59, 0, 0, time.FixedZone("BRT", -3*3600))
	if got := FormatDay(at); got != "2026-03-11" {
		t.Fatalf("expected UTC calendar date 2026-03-11, got %s", got)
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=25&offset=50", nil)
	p := ParsePagination(req, 20, 100)
	if p.Limit != 25 || p.Offset != 50 {
		t.Fatalf("expected 25/50, got %d/%d", p.Limit, p.Offset)
	}

	req = httptest.NewRequest("GET", "/", nil)
	p = ParsePagination(req, 20, 100)
	if p.Limit != 20 || p.Offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", p.Limit, p.Offset)
	}

	req = httptest.NewRequest("GET", "/?limit=5000", nil)
	p = ParsePagination(req, 20, 100)
	if p.Limit != 100 {
		t.Fatalf("expected clamp to 100, got %d", p.Limit)
	}

	req = httptest.NewRequest("GET", "/?limit=-3&offset=abc", nil)
	p = ParsePagination(req, 20, 100)
	if p.Limit != 20 || p.Offset != 0 {
		t.Fatalf("malformed values must fall back to defaults, got %d/%d", p.Limit, p.Offset)
	}
}

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("type", "", "type is required")
	v.Enum("method", "telepathy", "unknown method", "code", "qr")
	v.Required("employeeId", "emp-1", "required")

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Field != "method" || issues[1].Field != "type" {
		t.Fatalf("expected field-sorted issues, got %+v", issues)
	}
}

func TestValidatorEnum(t *testing.T) {
	v := NewValidator()
	v.Enum("type", "Entry", "unknown type", "entry", "exit")
	v.Enum("type", "", "unknown type", "entry", "exit")
	if v.HasIssues() {
		t.Fatalf("known and empty values must pass, got %+v", v.Issues())
	}

	v.Enum("type", "lunch", "unknown type", "entry", "exit")
	if !v.HasIssues() {
		t.Fatal("expected unknown value to be flagged")
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	from, _ := v.Date("from", "2026-03-10")
	to, _ := v.Date("to", "2026-03-01")
	v.DateOrder("from", from, "to", to)

	if !v.HasIssues() {
		t.Fatal("expected inverted range to be flagged")
	}
}
