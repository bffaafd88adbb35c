package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/employee"
)

type ExceptionKind int

const (
	ExceptionNone ExceptionKind = iota
	ExceptionHoliday
	ExceptionRecovery
)

// Exception is the calendar override that applies to one employee on one date.
type Exception struct {
	Kind       ExceptionKind
	Name       string // holiday name
	IsDayOff   bool   // recovery only
	PeriodName string // recovery only
}

// Status returns the record status an exception imposes, if any.
func (e Exception) Status() (attendance.Status, bool) {
	switch e.Kind {
	case ExceptionHoliday:
		return attendance.StatusHoliday, true
	case ExceptionRecovery:
		if e.IsDayOff {
			return attendance.StatusRecoveryOff, true
		}
		return attendance.StatusRecoveryDay, true
	}
	return "", false
}

// ExceptionFromStatus rebuilds the exception a lead record was classified with.
func ExceptionFromStatus(status attendance.Status) Exception {
	switch status {
	case attendance.StatusHoliday:
		return Exception{Kind: ExceptionHoliday}
	case attendance.StatusRecoveryOff:
		return Exception{Kind: ExceptionRecovery, IsDayOff: true}
	case attendance.StatusRecoveryDay:
		return Exception{Kind: ExceptionRecovery}
	}
	return Exception{Kind: ExceptionNone}
}

// ExceptionClassifier looks up holiday and recovery overrides, first match wins.
type ExceptionClassifier struct {
	calendarRepo calendar.Repository

	// strictRecoveryScope stops unset scope dimensions from acting as
	// wildcards, see calendar.RecoveryDeclaration.MatchesStrict.
	strictRecoveryScope bool
}

func NewExceptionClassifier(calendarRepo calendar.Repository, strictRecoveryScope bool) *ExceptionClassifier {
	return &ExceptionClassifier{
		calendarRepo:        calendarRepo,
		strictRecoveryScope: strictRecoveryScope,
	}
}

// Classify returns the override for emp on date: holiday first, then the
// first matching recovery declaration of an active period, else none.
func (c *ExceptionClassifier) Classify(ctx context.Context, emp employee.Employee, date time.Time) (Exception, error) {
	holiday, err := c.calendarRepo.GetHoliday(ctx, date)
	if err != nil {
		return Exception{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday != nil {
		return Exception{Kind: ExceptionHoliday, Name: holiday.Name}, nil
	}

	declarations, err := c.calendarRepo.GetRecoveryDeclarations(ctx, date)
	if err != nil {
		return Exception{}, fmt.Errorf("failed to get recovery declarations: %w", err)
	}

	scope := emp.Scope()
	for _, decl := range declarations {
		if !decl.PeriodActive {
			continue
		}
		if c.strictRecoveryScope {
			if !decl.MatchesStrict(scope) {
				continue
			}
		} else {
			if !decl.Matches(scope) {
				continue
			}
			if decl.MatchesOnlyThroughUnset(scope) {
				slog.Warn("Recovery declaration matched employee through an unset scope",
					"declaration_id", decl.ID, "period", decl.PeriodName, "employee_id", emp.ID)
			}
		}
		return Exception{Kind: ExceptionRecovery, IsDayOff: decl.IsDayOff, PeriodName: decl.PeriodName}, nil
	}

	return Exception{Kind: ExceptionNone}, nil
}
