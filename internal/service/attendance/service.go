package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx attendance.Transactor
	attendance.ClockRecordRepository
	employee.EmployeeRepository
	schedule.WorkScheduleRepository
	calendarRepo calendar.Repository
	classifier   *ExceptionClassifier
	clock        clock.Clock
	loc          *time.Location
}

// Options tune the engine without changing its computation.
type Options struct {
	Location            *time.Location // local reference for days and minutes-of-day
	StrictRecoveryScope bool
}

func NewAttendanceService(
	tx attendance.Transactor,
	clockRecordRepo attendance.ClockRecordRepository,
	employeeRepo employee.EmployeeRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	calendarRepo calendar.Repository,
	clk clock.Clock,
	opts Options,
) attendance.AttendanceService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                     tx,
		ClockRecordRepository:  clockRecordRepo,
		EmployeeRepository:     employeeRepo,
		WorkScheduleRepository: workScheduleRepo,
		calendarRepo:           calendarRepo,
		classifier:             NewExceptionClassifier(calendarRepo, opts.StrictRecoveryScope),
		clock:                  clk,
		loc:                    loc,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	emp, err := s.clockableEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	nowLocal := s.clock.Now().In(s.loc)
	date := attendance.DayOf(nowLocal)

	records, err := s.ClockRecordRepository.GetDayRecords(ctx, emp.ID, date)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get day records: %w", err)
	}
	if lead := attendance.FindEvent(records, attendance.EventIn); lead != nil {
		return attendance.CheckInResponse{}, &attendance.ConflictError{Err: attendance.ErrDuplicateCheckIn, Existing: s.localized(lead)}
	}

	ws, day, err := s.resolveDay(ctx, date)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	exception, err := s.classifier.Classify(ctx, emp, date)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	record := attendance.ClockRecord{
		EmployeeID: emp.ID,
		Date:       date,
		Timestamp:  nowLocal.UTC(),
		Event:      attendance.EventIn,
		Source:     req.Source,
	}

	if status, ok := exception.Status(); ok {
		// Holiday and recovery days are recorded as such, lateness is not measured.
		record.Status = status
	} else if day != nil && !day.IsWorkingDay {
		record.Status = attendance.StatusWeekend
	} else {
		record.Status = attendance.StatusCheckIn
		if day.HasWindow() {
			lateMinutes := LateMinutes(schedule.MinuteOfDay(nowLocal), *day.Start, ws.LateToleranceMinutes)
			record.ScheduledStart = day.Start
			record.LateMinutes = &lateMinutes
			if lateMinutes > 0 {
				record.Status = attendance.StatusLate
			}
		}
	}

	created, err := s.ClockRecordRepository.Append(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateCheckIn) {
			return attendance.CheckInResponse{}, s.conflict(ctx, emp.ID, date, attendance.EventIn, attendance.ErrDuplicateCheckIn)
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create check-in record: %w", err)
	}

	slog.Info("Employee checked in",
		"employee_id", emp.ID, "date", date.Format("2006-01-02"), "status", created.Status, "source", created.Source)

	return attendance.CheckInResponse{
		Record:         mapRecordToResponse(created, s.loc),
		LateMinutes:    created.LateMinutes,
		ScheduledStart: attendance.TimeOfDayString(created.ScheduledStart),
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	emp, err := s.clockableEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	nowLocal := s.clock.Now().In(s.loc)
	date := attendance.DayOf(nowLocal)

	records, err := s.ClockRecordRepository.GetDayRecords(ctx, emp.ID, date)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get day records: %w", err)
	}

	lead := attendance.FindEvent(records, attendance.EventIn)
	if lead == nil {
		return attendance.CheckOutResponse{}, attendance.ErrMissingCheckIn
	}
	if exit := attendance.FindEvent(records, attendance.EventOut); exit != nil {
		return attendance.CheckOutResponse{}, &attendance.ConflictError{Err: attendance.ErrDuplicateCheckOut, Existing: s.localized(exit)}
	}

	ws, day, err := s.resolveDay(ctx, date)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	record := attendance.ClockRecord{
		EmployeeID: emp.ID,
		Date:       date,
		Timestamp:  nowLocal.UTC(),
		Event:      attendance.EventOut,
		Status:     attendance.StatusCheckOut,
		Source:     req.Source,
	}

	if day != nil && !day.IsWorkingDay {
		record.Status = attendance.StatusWeekend
	} else if day.HasWindow() {
		actual := schedule.MinuteOfDay(nowLocal)
		earlyLeaveMinutes := EarlyLeaveMinutes(actual, *day.End, ws.EarlyLeaveToleranceMinutes)
		overtimeMinutes := 0
		if earlyLeaveMinutes == 0 {
			overtimeMinutes = OvertimeMinutes(actual, *day.End)
		}
		record.ScheduledStart = day.Start
		record.ScheduledEnd = day.End
		record.EarlyLeaveMinutes = &earlyLeaveMinutes
		record.OvertimeMinutes = &overtimeMinutes
	}

	var (
		created       attendance.ClockRecord
		workedMinutes *int
		dayStatus     *attendance.Status
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.ClockRecordRepository.Append(txCtx, record)
		if err != nil {
			return err
		}

		dayRecords, err := s.ClockRecordRepository.GetDayRecords(txCtx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get day records: %w", err)
		}

		eval, err := s.evaluateDay(txCtx, emp.ID, date, ws, day, dayRecords)
		if err != nil {
			return err
		}
		workedMinutes = eval.workedMinutes

		if eval.status == nil {
			slog.Warn("Day left unresolved after check-out",
				"employee_id", emp.ID, "date", date.Format("2006-01-02"),
				"record_count", len(dayRecords), "error", attendance.ErrIncompleteDayRecord)
			return nil
		}

		if err := s.ClockRecordRepository.UpdateLeadRecordStatus(txCtx, emp.ID, date, *eval.status); err != nil {
			return fmt.Errorf("failed to update day status: %w", err)
		}
		dayStatus = eval.status
		return nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateCheckOut) {
			return attendance.CheckOutResponse{}, s.conflict(ctx, emp.ID, date, attendance.EventOut, attendance.ErrDuplicateCheckOut)
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	breakMinutes := 0
	if ws != nil {
		breakMinutes = ws.BreakMinutes
	}

	resolved := "unresolved"
	if dayStatus != nil {
		resolved = string(*dayStatus)
	}
	slog.Info("Employee checked out",
		"employee_id", emp.ID, "date", date.Format("2006-01-02"), "status", created.Status, "day_status", resolved)

	return attendance.CheckOutResponse{
		Record:             mapRecordToResponse(created, s.loc),
		WorkedMinutesToday: workedMinutes,
		Summary: attendance.DaySummary{
			ScheduledStart:    attendance.TimeOfDayString(day.ScheduledStart()),
			ScheduledEnd:      attendance.TimeOfDayString(day.ScheduledEnd()),
			LateMinutes:       lead.LateMinutes,
			EarlyLeaveMinutes: created.EarlyLeaveMinutes,
			OvertimeMinutes:   created.OvertimeMinutes,
			BreakMinutes:      breakMinutes,
			DayStatus:         dayStatus,
		},
	}, nil
}

// GetDayReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDayReport(ctx context.Context, employeeID string, dateStr string) (attendance.DayReportResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return attendance.DayReportResponse{}, errs
	}

	records, err := s.ClockRecordRepository.GetDayRecords(ctx, employeeID, date)
	if err != nil {
		return attendance.DayReportResponse{}, fmt.Errorf("failed to get day records: %w", err)
	}

	ws, day, err := s.resolveDay(ctx, date)
	if err != nil {
		return attendance.DayReportResponse{}, err
	}

	eval, err := s.evaluateDay(ctx, employeeID, date, ws, day, records)
	if err != nil {
		return attendance.DayReportResponse{}, err
	}

	exception := eval.exception
	if attendance.FindEvent(records, attendance.EventIn) == nil {
		// Nobody clocked in, so no record carries the exception yet.
		exception, err = s.classifyReportDay(ctx, employeeID, date)
		if err != nil {
			return attendance.DayReportResponse{}, err
		}
	}

	responses := make([]attendance.ClockRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec, s.loc))
	}

	return attendance.DayReportResponse{
		EmployeeID:       employeeID,
		Date:             date.Format("2006-01-02"),
		IsWorkingDay:     isWorkingDay(exception, day),
		ScheduledMinutes: day.ScheduledMinutes(),
		WorkedMinutes:    eval.workedMinutes,
		DayStatus:        eval.status,
		Incomplete:       eval.workedMinutes == nil,
		Records:          responses,
	}, nil
}

// ListIncompleteDays implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListIncompleteDays(ctx context.Context, filter attendance.AnomalyFilter) (attendance.ListIncompleteDaysResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListIncompleteDaysResponse{}, err
	}
	from, _ := validator.IsValidDate(filter.StartDate)
	to, _ := validator.IsValidDate(filter.EndDate)

	days, err := s.ClockRecordRepository.ListIncompleteDays(ctx, from, to)
	if err != nil {
		return attendance.ListIncompleteDaysResponse{}, fmt.Errorf("failed to list incomplete days: %w", err)
	}

	responses := make([]attendance.IncompleteDayResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, attendance.IncompleteDayResponse{
			EmployeeID:  d.EmployeeID,
			Date:        d.Date.Format("2006-01-02"),
			RecordCount: d.RecordCount,
		})
	}

	return attendance.ListIncompleteDaysResponse{
		TotalCount: len(responses),
		Days:       responses,
	}, nil
}

// clockableEmployee loads the employee and rejects anyone exempt from clocking.
func (s *AttendanceServiceImpl) clockableEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.EmploymentStatus != "" && emp.EmploymentStatus != employee.EmploymentStatusActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	if !emp.RequiresClocking {
		return employee.Employee{}, attendance.ErrEmployeeNotClockable
	}
	return emp, nil
}

// resolveDay loads the active schedule and resolves date against it. Without
// an active schedule both results are nil and the day is unconstrained.
func (s *AttendanceServiceImpl) resolveDay(ctx context.Context, date time.Time) (*schedule.WorkSchedule, *schedule.DayResolution, error) {
	ws, err := s.WorkScheduleRepository.GetActiveSchedule(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active schedule: %w", err)
	}
	if ws == nil {
		slog.Warn("No active work schedule, day is unconstrained",
			"date", date.Format("2006-01-02"), "error", attendance.ErrNoActiveSchedule)
		return nil, nil, nil
	}
	return ws, ResolveSchedule(ws, date), nil
}

type dayEvaluation struct {
	workedMinutes *int
	status        *attendance.Status
	exception     Exception
}

// classifyReportDay runs the exception classifier for a report. An unknown
// employee has no scope to match, so the day keeps its schedule meaning.
func (s *AttendanceServiceImpl) classifyReportDay(ctx context.Context, employeeID string, date time.Time) (Exception, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return Exception{Kind: ExceptionNone}, nil
		}
		return Exception{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return s.classifier.Classify(ctx, emp, date)
}

// isWorkingDay is the schedule's answer adjusted by the day's exception:
// holidays and recovery days off are not worked, make-up days are.
func isWorkingDay(exception Exception, day *schedule.DayResolution) bool {
	switch exception.Kind {
	case ExceptionHoliday:
		return false
	case ExceptionRecovery:
		return !exception.IsDayOff
	}
	return day == nil || day.IsWorkingDay
}

// evaluateDay aggregates worked time and runs the status cascade over the
// records of one day. It never writes.
func (s *AttendanceServiceImpl) evaluateDay(
	ctx context.Context,
	employeeID string,
	date time.Time,
	ws *schedule.WorkSchedule,
	day *schedule.DayResolution,
	records []attendance.ClockRecord,
) (dayEvaluation, error) {
	overtimeApproved, err := s.calendarRepo.HasApprovedOvertime(ctx, employeeID, date)
	if err != nil {
		return dayEvaluation{}, fmt.Errorf("failed to check overtime approval: %w", err)
	}

	breakMinutes := 0
	if ws != nil {
		breakMinutes = ws.BreakMinutes
	}

	worked := ComputeWorkedMinutes(records, ws, date, overtimeApproved, breakMinutes, s.loc)

	lead := attendance.FindEvent(records, attendance.EventIn)
	if lead == nil {
		return dayEvaluation{workedMinutes: worked}, nil
	}

	// The exception a day was classified with at check-in stays with it.
	exception := ExceptionFromStatus(lead.Status)
	facts := DayFacts{
		Exception:        exception,
		IsWorkingDay:     day == nil || day.IsWorkingDay,
		CheckInLate:      lead.Status == attendance.StatusLate || (lead.LateMinutes != nil && *lead.LateMinutes > 0),
		WorkedMinutes:    worked,
		ScheduledMinutes: max(0, day.ScheduledMinutes()-breakMinutes),
	}
	if exit := attendance.FindEvent(records, attendance.EventOut); exit != nil && exit.EarlyLeaveMinutes != nil {
		facts.EarlyLeaveMinutes = *exit.EarlyLeaveMinutes
	}

	status, ok := ResolveDayStatus(facts)
	if !ok {
		return dayEvaluation{workedMinutes: worked, exception: exception}, nil
	}
	return dayEvaluation{workedMinutes: worked, status: &status, exception: exception}, nil
}

// conflict builds the duplicate error after the storage layer rejected an
// insert, attaching the record that won.
func (s *AttendanceServiceImpl) conflict(ctx context.Context, employeeID string, date time.Time, event attendance.Event, sentinel error) error {
	conflictErr := &attendance.ConflictError{Err: sentinel}
	records, err := s.ClockRecordRepository.GetDayRecords(ctx, employeeID, date)
	if err != nil {
		slog.Warn("Failed to load existing record for conflict", "employee_id", employeeID, "error", err)
		return conflictErr
	}
	conflictErr.Existing = s.localized(attendance.FindEvent(records, event))
	return conflictErr
}

// localized returns a copy of rec with its timestamp in the service location.
func (s *AttendanceServiceImpl) localized(rec *attendance.ClockRecord) *attendance.ClockRecord {
	if rec == nil {
		return nil
	}
	local := *rec
	local.Timestamp = local.Timestamp.In(s.loc)
	return &local
}

// mapRecordToResponse converts a ClockRecord to ClockRecordResponse in loc
func mapRecordToResponse(rec attendance.ClockRecord, loc *time.Location) attendance.ClockRecordResponse {
	rec.Timestamp = rec.Timestamp.In(loc)
	return attendance.NewClockRecordResponse(rec)
}
