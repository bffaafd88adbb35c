package attendance

import "github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"

// LateMinutes is the delay of actual after scheduledStart. A delay within the
// tolerance counts as zero; beyond it the full delay is reported.
func LateMinutes(actual, scheduledStart schedule.TimeOfDay, toleranceMinutes int) int {
	diff := int(actual - scheduledStart)
	if diff <= toleranceMinutes || diff <= 0 {
		return 0
	}
	return diff
}

// EarlyLeaveMinutes is how long before scheduledEnd the employee left,
// with the same tolerance rule as LateMinutes.
func EarlyLeaveMinutes(actual, scheduledEnd schedule.TimeOfDay, toleranceMinutes int) int {
	diff := int(scheduledEnd - actual)
	if diff <= toleranceMinutes || diff <= 0 {
		return 0
	}
	return diff
}

// OvertimeMinutes is the time spent after scheduledEnd. Callers only use it
// when EarlyLeaveMinutes is zero.
func OvertimeMinutes(actual, scheduledEnd schedule.TimeOfDay) int {
	return max(0, int(actual-scheduledEnd))
}
