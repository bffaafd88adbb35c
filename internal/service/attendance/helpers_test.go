package attendance

import (
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
)

// testLoc is a fixed offset so tests do not depend on the tz database.
var testLoc = time.FixedZone("CET", 60*60)

const (
	monday   = "2025-03-10"
	saturday = "2025-03-15"
)

func at(date string, hour, minute int) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, testLoc)
}

func day(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d
}

func tod(hour, minute int) schedule.TimeOfDay {
	return schedule.NewTimeOfDay(hour, minute)
}

// standardSchedule is 08:00-16:00 Monday to Friday with a one hour break.
// Saturday and Sunday carry times too, so the working-day set alone decides.
func standardSchedule() *schedule.WorkSchedule {
	times := make(map[int]schedule.DayTimes)
	for d := 1; d <= 7; d++ {
		times[d] = schedule.DayTimes{Start: tod(8, 0), End: tod(16, 0)}
	}
	return &schedule.WorkSchedule{
		ID:           "ws-standard",
		Name:         "Standard",
		IsActive:     true,
		Times:        times,
		WorkingDays:  []int{1, 2, 3, 4, 5},
		BreakMinutes: 60,
	}
}

func clockPair(date string, inH, inM, outH, outM int) []attendance.ClockRecord {
	return []attendance.ClockRecord{
		{EmployeeID: "emp-1", Date: day(date), Timestamp: at(date, inH, inM).UTC(), Event: attendance.EventIn},
		{EmployeeID: "emp-1", Date: day(date), Timestamp: at(date, outH, outM).UTC(), Event: attendance.EventOut},
	}
}

func strPtr(s string) *string { return &s }
