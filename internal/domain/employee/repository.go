package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no live employee has this id.
	GetByID(ctx context.Context, id string) (Employee, error)
}
