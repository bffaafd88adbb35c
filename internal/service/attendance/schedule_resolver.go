package attendance

import (
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
)

// ResolveSchedule tells whether date is a working day under ws and, if so,
// which window applies. A nil schedule yields nil: the day is unconstrained.
// Times are only returned for a working day that has them configured.
func ResolveSchedule(ws *schedule.WorkSchedule, date time.Time) *schedule.DayResolution {
	if ws == nil {
		return nil
	}

	weekday := schedule.ISOWeekday(date)
	resolution := &schedule.DayResolution{IsWorkingDay: ws.IsWorkingDay(weekday)}
	if !resolution.IsWorkingDay {
		return resolution
	}

	times, ok := ws.Times[weekday]
	if !ok {
		return resolution
	}
	start, end := times.Start, times.End
	resolution.Start = &start
	resolution.End = &end
	return resolution
}
