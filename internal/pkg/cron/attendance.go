package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
	loc               *time.Location
	interval          time.Duration

	mu           sync.Mutex
	lastReported string // last day already reported, YYYY-MM-DD
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, clk clock.Clock, loc *time.Location, interval time.Duration) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clk,
		loc:               loc,
		interval:          interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_incomplete_days", j.interval, j.ReportIncompleteDays)
}

// ReportIncompleteDays logs every employee whose yesterday ended with an odd
// number of clock records. Records are never modified here; a given day is
// reported once per process.
func (j *AttendanceJobs) ReportIncompleteDays(ctx context.Context) error {
	yesterday := j.clock.Now().In(j.loc).AddDate(0, 0, -1).Format("2006-01-02")

	j.mu.Lock()
	if j.lastReported == yesterday {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	result, err := j.attendanceService.ListIncompleteDays(ctx, attendance.AnomalyFilter{
		StartDate: yesterday,
		EndDate:   yesterday,
	})
	if err != nil {
		return fmt.Errorf("failed to list incomplete days: %w", err)
	}

	for _, d := range result.Days {
		slog.Warn("Cron: Incomplete attendance day",
			"employee_id", d.EmployeeID, "date", d.Date, "record_count", d.RecordCount,
			"error", attendance.ErrIncompleteDayRecord)
	}
	slog.Info("Cron: Incomplete days report completed", "date", yesterday, "count", result.TotalCount)

	j.mu.Lock()
	j.lastReported = yesterday
	j.mu.Unlock()

	return nil
}
