package attendance

import "github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"

// DayFacts is everything the final status of a day depends on.
type DayFacts struct {
	Exception         Exception
	IsWorkingDay      bool
	EarlyLeaveMinutes int
	CheckInLate       bool
	WorkedMinutes     *int // nil when the day has an odd number of records
	ScheduledMinutes  int  // net of break, same basis as WorkedMinutes
}

// statusRule returns the status it decides, or false to defer to the next rule.
type statusRule func(f DayFacts) (attendance.Status, bool)

// dayStatusRules is evaluated in order; the first rule that matches wins.
var dayStatusRules = []statusRule{
	holidayRule,
	recoveryRule,
	weekendRule,
	earlyLeaveRule,
	lateRule,
	attendanceRule,
}

func holidayRule(f DayFacts) (attendance.Status, bool) {
	if f.Exception.Kind == ExceptionHoliday {
		return attendance.StatusHoliday, true
	}
	return "", false
}

func recoveryRule(f DayFacts) (attendance.Status, bool) {
	if f.Exception.Kind == ExceptionRecovery {
		return f.Exception.Status()
	}
	return "", false
}

func weekendRule(f DayFacts) (attendance.Status, bool) {
	if !f.IsWorkingDay {
		return attendance.StatusWeekend, true
	}
	return "", false
}

func earlyLeaveRule(f DayFacts) (attendance.Status, bool) {
	if f.EarlyLeaveMinutes > 0 {
		return attendance.StatusEarlyLeave, true
	}
	return "", false
}

func lateRule(f DayFacts) (attendance.Status, bool) {
	if f.CheckInLate {
		return attendance.StatusLate, true
	}
	return "", false
}

func attendanceRule(f DayFacts) (attendance.Status, bool) {
	if *f.WorkedMinutes >= f.ScheduledMinutes {
		return attendance.StatusPresent, true
	}
	return attendance.StatusPartial, true
}

// ResolveDayStatus runs the cascade. An incomplete day (odd record count) is
// never resolved, whatever else is known about it.
func ResolveDayStatus(f DayFacts) (attendance.Status, bool) {
	if f.WorkedMinutes == nil {
		return "", false
	}
	for _, rule := range dayStatusRules {
		if status, ok := rule(f); ok {
			return status, true
		}
	}
	return "", false
}
