package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Duplicates carry the record that is already there
	var conflictErr *attendance.ConflictError
	if errors.As(err, &conflictErr) {
		if conflictErr.Existing != nil {
			ConflictWithData(w, conflictErr.Error(), attendance.NewClockRecordResponse(*conflictErr.Existing))
			return
		}
		Conflict(w, conflictErr.Error())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeClaimMissing):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeNotClockable):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrDuplicateCheckIn), errors.Is(err, attendance.ErrDuplicateCheckOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrMissingCheckIn):
		UnprocessableEntity(w, "MISSING_CHECK_IN", err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
