package punch

// DayState is the employee's position in the daily punch cycle, derived from
// the punches already recorded for the day.
type DayState string

const (
	StateAwaitingEntry DayState = "awaiting_entry"
	StateWorking       DayState = "working"
	StateOnBreak       DayState = "on_break"
	StateDone          DayState = "done"
)

// DeriveDayState folds the day's punches (ordered by timestamp) into the
// current state. Derivation follows the last punch only, so a sequence that
// was recorded under the permissive policy still yields a usable state.
func DeriveDayState(punches []TimePunch) DayState {
	if len(punches) == 0 {
		return StateAwaitingEntry
	}
	switch punches[len(punches)-1].Type {
	case TypeEntry, TypeBreakEnd:
		return StateWorking
	case TypeBreakStart:
		return StateOnBreak
	case TypeExit:
		return StateDone
	}
	return StateAwaitingEntry
}

// LegalNext returns the punch types that may legally follow the given state.
// Break cycles repeat; the day ends at exit.
func LegalNext(state DayState) []string {
	switch state {
	case StateAwaitingEntry:
		return []string{TypeEntry}
	case StateWorking:
		return []string{TypeBreakStart, TypeExit}
	case StateOnBreak:
		return []string{TypeBreakEnd}
	}
	return nil
}

// LegalTransition reports whether punchType is a legal successor in state.
func LegalTransition(state DayState, punchType string) bool {
	for _, t := range LegalNext(state) {
		if t == punchType {
			return true
		}
	}
	return false
}
