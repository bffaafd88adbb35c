package employee

import (
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/calendar"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	RequiresClocking bool
	DepartmentID     *string
	SegmentID        *string
	CenterID         *string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// Scope returns the organisational attributes used to match recovery declarations.
func (e Employee) Scope() calendar.Scope {
	return calendar.Scope{
		DepartmentID: e.DepartmentID,
		SegmentID:    e.SegmentID,
		CenterID:     e.CenterID,
	}
}
