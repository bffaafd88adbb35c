package attendance

import (
	"context"
)

// AttendanceService defines the clocking use cases
type AttendanceService interface {
	// CheckIn records the first clock event of the day for an employee
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut records the closing event and resolves the day's final status
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// GetDayReport recomputes worked time and status of one day without writing
	GetDayReport(ctx context.Context, employeeID string, date string) (DayReportResponse, error)

	// ListIncompleteDays lists days with an odd number of records
	ListIncompleteDays(ctx context.Context, filter AnomalyFilter) (ListIncompleteDaysResponse, error)
}
