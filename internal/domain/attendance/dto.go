package attendance

import (
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCKING DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	Source     Source `json:"source,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return validateClockRequest(r.EmployeeID, &r.Source)
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Source     Source `json:"source,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return validateClockRequest(r.EmployeeID, &r.Source)
}

func validateClockRequest(employeeID string, source *Source) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if *source == "" {
		*source = SourceSelfService
	} else if !validator.IsInSlice(string(*source), SourceValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: self_service, kiosk, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockRecordResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	Timestamp         string  `json:"timestamp"`
	Event             Event   `json:"event"`
	Status            Status  `json:"status"`
	ScheduledStart    *string `json:"scheduled_start,omitempty"`
	ScheduledEnd      *string `json:"scheduled_end,omitempty"`
	LateMinutes       *int    `json:"late_minutes,omitempty"`
	EarlyLeaveMinutes *int    `json:"early_leave_minutes,omitempty"`
	OvertimeMinutes   *int    `json:"overtime_minutes,omitempty"`
	Source            Source  `json:"source"`
}

// NewClockRecordResponse renders rec with its timestamp in the timestamp's own location.
func NewClockRecordResponse(rec ClockRecord) ClockRecordResponse {
	return ClockRecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		Date:              rec.Date.Format("2006-01-02"),
		Timestamp:         rec.Timestamp.Format(time.RFC3339),
		Event:             rec.Event,
		Status:            rec.Status,
		ScheduledStart:    TimeOfDayString(rec.ScheduledStart),
		ScheduledEnd:      TimeOfDayString(rec.ScheduledEnd),
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		OvertimeMinutes:   rec.OvertimeMinutes,
		Source:            rec.Source,
	}
}

// TimeOfDayString formats t as HH:MM, nil stays nil.
func TimeOfDayString(t *schedule.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

type CheckInResponse struct {
	Record         ClockRecordResponse `json:"record"`
	LateMinutes    *int                `json:"late_minutes,omitempty"`
	ScheduledStart *string             `json:"scheduled_start,omitempty"`
}

type DaySummary struct {
	ScheduledStart    *string `json:"scheduled_start,omitempty"`
	ScheduledEnd      *string `json:"scheduled_end,omitempty"`
	LateMinutes       *int    `json:"late_minutes,omitempty"`
	EarlyLeaveMinutes *int    `json:"early_leave_minutes,omitempty"`
	OvertimeMinutes   *int    `json:"overtime_minutes,omitempty"`
	BreakMinutes      int     `json:"break_minutes"`
	DayStatus         *Status `json:"day_status,omitempty"` // nil while the day is incomplete
}

type CheckOutResponse struct {
	Record             ClockRecordResponse `json:"record"`
	WorkedMinutesToday *int                `json:"worked_minutes_today"`
	Summary            DaySummary          `json:"summary"`
}

// ========================================
// REPORTING DTOs
// ========================================

type DayReportResponse struct {
	EmployeeID       string                `json:"employee_id"`
	Date             string                `json:"date"`
	IsWorkingDay     bool                  `json:"is_working_day"` // after holiday and recovery overrides
	ScheduledMinutes int                   `json:"scheduled_minutes"`
	WorkedMinutes    *int                  `json:"worked_minutes"`
	DayStatus        *Status               `json:"day_status,omitempty"`
	Incomplete       bool                  `json:"incomplete"`
	Records          []ClockRecordResponse `json:"records"`
}

type AnomalyFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *AnomalyFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IncompleteDayResponse struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	RecordCount int    `json:"record_count"`
}

type ListIncompleteDaysResponse struct {
	TotalCount int                     `json:"total_count"`
	Days       []IncompleteDayResponse `json:"days"`
}
