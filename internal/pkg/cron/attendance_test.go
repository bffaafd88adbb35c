package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	filters []attendance.AnomalyFilter
	err     error
}

func (s *stubAttendanceService) ListIncompleteDays(_ context.Context, filter attendance.AnomalyFilter) (attendance.ListIncompleteDaysResponse, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return attendance.ListIncompleteDaysResponse{}, s.err
	}
	return attendance.ListIncompleteDaysResponse{
		TotalCount: 1,
		Days:       []attendance.IncompleteDayResponse{{EmployeeID: "emp-1", Date: filter.StartDate, RecordCount: 1}},
	}, nil
}

func TestAttendanceJobs_ReportIncompleteDays(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	clk := clock.NewFake(time.Date(2025, 3, 11, 0, 30, 0, 0, loc))
	svc := &stubAttendanceService{}
	jobs := NewAttendanceJobs(svc, clk, loc, time.Hour)

	require.NoError(t, jobs.ReportIncompleteDays(context.Background()))
	require.Len(t, svc.filters, 1)
	assert.Equal(t, "2025-03-10", svc.filters[0].StartDate)
	assert.Equal(t, "2025-03-10", svc.filters[0].EndDate)

	// Same day again: already reported.
	clk.Advance(time.Hour)
	require.NoError(t, jobs.ReportIncompleteDays(context.Background()))
	assert.Len(t, svc.filters, 1)

	clk.Advance(24 * time.Hour)
	require.NoError(t, jobs.ReportIncompleteDays(context.Background()))
	require.Len(t, svc.filters, 2)
	assert.Equal(t, "2025-03-11", svc.filters[1].StartDate)
}

func TestAttendanceJobs_FailureIsRetriedNextRun(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC))
	svc := &stubAttendanceService{err: errors.New("db down")}
	jobs := NewAttendanceJobs(svc, clk, nil, time.Hour)

	assert.Error(t, jobs.ReportIncompleteDays(context.Background()))

	svc.err = nil
	require.NoError(t, jobs.ReportIncompleteDays(context.Background()))
	assert.Len(t, svc.filters, 2)
}

func TestScheduler_RunOnceAndStop(t *testing.T) {
	s := NewScheduler(context.Background())
	var calls atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("disabled", 0, func(ctx context.Context) error {
		t.Fatal("disabled job must not run")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), calls.Load())

	s.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 10*time.Millisecond)
	s.Stop()
}
