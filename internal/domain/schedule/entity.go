package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since local midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// MinuteOfDay truncates t to the minute and returns its offset from midnight
// in t's own location.
func MinuteOfDay(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DayTimes is the configured start/end pair of one weekday.
type DayTimes struct {
	Start TimeOfDay
	End   TimeOfDay
}

// WorkSchedule is the organisation-wide timetable. Only one schedule is active at a time.
type WorkSchedule struct {
	ID                         string
	Name                       string
	IsActive                   bool
	Times                      map[int]DayTimes // keyed by ISO weekday, 1=Monday ... 7=Sunday
	WorkingDays                []int            // ISO weekdays
	BreakMinutes               int
	LateToleranceMinutes       int
	EarlyLeaveToleranceMinutes int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// IsWorkingDay reports whether the ISO weekday belongs to the working-day set.
func (s *WorkSchedule) IsWorkingDay(isoWeekday int) bool {
	for _, d := range s.WorkingDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// ISOWeekday maps a date to 1=Monday ... 7=Sunday.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayResolution is what the schedule says about one calendar date.
// Start and End are only set when the day is a working day with configured times.
type DayResolution struct {
	IsWorkingDay bool
	Start        *TimeOfDay
	End          *TimeOfDay
}

// HasWindow reports whether both boundaries are known.
func (r *DayResolution) HasWindow() bool {
	return r != nil && r.Start != nil && r.End != nil
}

// ScheduledMinutes is the length of the window, 0 when there is none.
func (r *DayResolution) ScheduledMinutes() int {
	if !r.HasWindow() {
		return 0
	}
	if d := int(*r.End - *r.Start); d > 0 {
		return d
	}
	return 0
}

func (r *DayResolution) ScheduledStart() *TimeOfDay {
	if r == nil {
		return nil
	}
	return r.Start
}

func (r *DayResolution) ScheduledEnd() *TimeOfDay {
	if r == nil {
		return nil
	}
	return r.End
}
