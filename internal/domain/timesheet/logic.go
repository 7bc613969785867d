package timesheet

import (
	"sort"
	"time"

	"ponto/internal/domain/consolidation"
	"ponto/internal/domain/employee"
)

// IsLate reports whether a consolidated day counts as a late arrival: the
// first punch landed after scheduled start plus the tolerance window.
func IsLate(day consolidation.DailyConsolidation, sched employee.ScheduleConfig) bool {
	if day.FirstPunch == nil {
		return false
	}
	start, err := sched.StartOn(day.Date)
	if err != nil {
		return false
	}
	limit := start.Add(time.Duration(sched.ToleranceMinutes) * time.Minute)
	return day.FirstPunch.After(limit)
}

// Summarize folds consolidated days into the range summary. The attendance
// rate is worked/expected*100 and is deliberately not capped at 100.
func Summarize(days []consolidation.DailyConsolidation, sched employee.ScheduleConfig) Summary {
	var s Summary
	for _, d := range days {
		s.TotalWorkedMinutes += d.WorkedMinutes
		s.TotalExpectedMinutes += d.ExpectedMinutes
		s.ExtraMinutes += d.ExtraMinutes
		s.OwedMinutes += d.OwedMinutes
		if d.Incomplete {
			s.MissingPunchDays++
		}
		if d.Justified {
			s.JustifiedDays++
		}
		if IsLate(d, sched) {
			s.LateDays++
		}
	}
	s.BalanceMinutes = s.TotalWorkedMinutes - s.TotalExpectedMinutes
	if s.TotalExpectedMinutes > 0 {
		s.AttendanceRate = float64(s.TotalWorkedMinutes) / float64(s.TotalExpectedMinutes) * 100
	}
	return s
}

// SortLateArrivals orders the report by late-day count descending, breaking
// ties by employee name so equal counts come out in a stable order.
func SortLateArrivals(rows []LateArrivalRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LateDays != rows[j].LateDays {
			return rows[i].LateDays > rows[j].LateDays
		}
		return rows[i].EmployeeName < rows[j].EmployeeName
	})
}
