package attendance

import (
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
)

type Status string

const (
	StatusCheckIn     Status = "check_in"
	StatusLate        Status = "late"
	StatusCheckOut    Status = "check_out"
	StatusWeekend     Status = "weekend"
	StatusHoliday     Status = "holiday"
	StatusRecoveryOff Status = "recovery_off"
	StatusRecoveryDay Status = "recovery_day"
	StatusPresent     Status = "present"
	StatusPartial     Status = "partial"
	StatusEarlyLeave  Status = "sortie_anticipee"
)

// Event is the clock direction of a record. Status alone cannot tell an entry
// from an exit because weekend and exception statuses are used for both.
type Event string

const (
	EventIn  Event = "in"
	EventOut Event = "out"
)

type Source string

const (
	SourceSelfService Source = "self_service"
	SourceKiosk       Source = "kiosk"
	SourceAdmin       Source = "admin"
)

var SourceValues = []string{
	string(SourceSelfService),
	string(SourceKiosk),
	string(SourceAdmin),
}

// ClockRecord is one clock event. The first record of a day (the lead record)
// later receives the day's final status; every other record is immutable.
type ClockRecord struct {
	ID                string
	EmployeeID        string
	Date              time.Time // calendar day, midnight UTC
	Timestamp         time.Time
	Event             Event
	Status            Status
	ScheduledStart    *schedule.TimeOfDay
	ScheduledEnd      *schedule.TimeOfDay
	LateMinutes       *int
	EarlyLeaveMinutes *int
	OvertimeMinutes   *int
	Source            Source
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IncompleteDay is an employee/date pair with an odd number of records.
type IncompleteDay struct {
	EmployeeID  string
	Date        time.Time
	RecordCount int
}

// DayOf returns the calendar day of t, as seen in t's location, at midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FindEvent returns the first record of the given direction, or nil.
func FindEvent(records []ClockRecord, event Event) *ClockRecord {
	for i := range records {
		if records[i].Event == event {
			return &records[i]
		}
	}
	return nil
}
