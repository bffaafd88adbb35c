package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
)

// ComputeWorkedMinutes pairs the day's records as (entry, exit) and sums the
// paired intervals in loc. Unless overtime is approved, each interval is
// clamped to the scheduled window of date so that early arrival and late
// departure are not paid. breakMinutes is deducted once per day.
// It returns nil when the record count is odd.
func ComputeWorkedMinutes(
	records []attendance.ClockRecord,
	ws *schedule.WorkSchedule,
	date time.Time,
	overtimeApproved bool,
	breakMinutes int,
	loc *time.Location,
) *int {
	if len(records)%2 != 0 {
		return nil
	}

	ordered := make([]attendance.ClockRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	day := ResolveSchedule(ws, date)
	clamp := day.HasWindow() && !overtimeApproved

	total := 0
	for i := 0; i+1 < len(ordered); i += 2 {
		entry := schedule.MinuteOfDay(ordered[i].Timestamp.In(loc))
		exit := schedule.MinuteOfDay(ordered[i+1].Timestamp.In(loc))

		if clamp {
			if entry < *day.Start {
				entry = *day.Start
			}
			if exit > *day.End {
				exit = *day.End
			}
		}

		total += max(0, int(exit-entry))
	}

	worked := max(0, total-breakMinutes)
	return &worked
}
