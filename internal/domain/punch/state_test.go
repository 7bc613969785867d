package punch

import (
	"testing"
	"time"
)

func punchesOf(types ...string) []TimePunch {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	out := make([]TimePunch, len(types))
	for i, typ := range types {
		out[i] = TimePunch{Type: typ, PunchedAt: at.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func TestDeriveDayState(t *testing.T) {
	cases := []struct {
		name  string
		types []string
		want  DayState
	}{
		{"empty day", nil, StateAwaitingEntry},
		{"after entry", []string{TypeEntry}, StateWorking},
		{"on break", []string{TypeEntry, TypeBreakStart}, StateOnBreak},
		{"back from break", []string{TypeEntry, TypeBreakStart, TypeBreakEnd}, StateWorking},
		{"after exit", []string{TypeEntry, TypeBreakStart, TypeBreakEnd, TypeExit}, StateDone},
	}
	for _, tc := range cases {
		if got := DeriveDayState(punchesOf(tc.types...)); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestLegalTransitionTable(t *testing.T) {
	allowed := map[DayState]map[string]bool{
		StateAwaitingEntry: {TypeEntry: true},
		StateWorking:       {TypeBreakStart: true, TypeExit: true},
		StateOnBreak:       {TypeBreakEnd: true},
		StateDone:          {},
	}

	every := []string{TypeEntry, TypeBreakStart, TypeBreakEnd, TypeExit}
	for state, legal := range allowed {
		for _, typ := range every {
			if got := LegalTransition(state, typ); got != legal[typ] {
				t.Fatalf("state %s type %s: expected %v, got %v", state, typ, legal[typ], got)
			}
		}
	}
}

func TestBreakCyclesRepeat(t *testing.T) {
	day := punchesOf(TypeEntry, TypeBreakStart, TypeBreakEnd)
	state := DeriveDayState(day)
	if state != StateWorking {
		t.Fatalf("expected working after first break, got %s", state)
	}
	if !LegalTransition(state, TypeBreakStart) {
		t.Fatal("expected a second break to be legal")
	}
}

func TestDoneIsTerminal(t *testing.T) {
	if next := LegalNext(StateDone); len(next) != 0 {
		t.Fatalf("expected no legal punches after exit, got %v", next)
	}
}
