package consolidation

import (
	"time"

	"ponto/internal/domain/punch"
)

// Build reduces one day's punches into a consolidation row. Pure: feeding it
// the same punches and configuration always yields the same row (the caller
// stamps ProcessedAt). Worked time is the sum of paired entry/exit intervals
// minus the sum of paired break intervals; unpaired punches contribute
// nothing and mark the day incomplete.
func Build(employeeID string, date time.Time, punches []punch.TimePunch, expectedMinutes, minBreakMinutes int, justified bool) DailyConsolidation {
	row := DailyConsolidation{
		EmployeeID:      employeeID,
		Date:            date,
		ExpectedMinutes: expectedMinutes,
		Justified:       justified,
		PunchCount:      len(punches),
	}

	if len(punches) > 0 {
		first := punches[0].PunchedAt
		last := punches[len(punches)-1].PunchedAt
		row.FirstPunch = &first
		row.LastPunch = &last
	}

	var workSeconds, breakSeconds float64
	var openEntry, openBreak *time.Time

	for i := range punches {
		p := punches[i]
		at := p.PunchedAt
		switch p.Type {
		case punch.TypeEntry:
			if openEntry != nil || openBreak != nil {
				row.Incomplete = true
			}
			openEntry = &at
		case punch.TypeExit:
			if openEntry == nil {
				row.Incomplete = true
				continue
			}
			if openBreak != nil {
				// Break never closed before exit.
				row.Incomplete = true
				openBreak = nil
			}
			workSeconds += at.Sub(*openEntry).Seconds()
			openEntry = nil
		case punch.TypeBreakStart:
			if openEntry == nil || openBreak != nil {
				row.Incomplete = true
				continue
			}
			openBreak = &at
		case punch.TypeBreakEnd:
			if openBreak == nil {
				row.Incomplete = true
				continue
			}
			dur := at.Sub(*openBreak)
			breakSeconds += dur.Seconds()
			if minBreakMinutes > 0 {
				if short := minBreakMinutes - int(dur.Minutes()); short > 0 {
					row.IntervalViolationMinutes += short
				}
			}
			openBreak = nil
		}
	}

	if openEntry != nil || openBreak != nil {
		row.Incomplete = true
	}

	worked := int((workSeconds - breakSeconds) / 60)
	if worked < 0 {
		worked = 0
	}
	row.WorkedMinutes = worked
	row.BreakMinutes = int(breakSeconds / 60)

	if worked > expectedMinutes {
		row.ExtraMinutes = worked - expectedMinutes
	}
	if expectedMinutes > worked {
		row.OwedMinutes = expectedMinutes - worked
	}
	// An approved justification waives the owed penalty for the day; extra
	// hours are unaffected.
	if justified {
		row.OwedMinutes = 0
	}

	return row
}
