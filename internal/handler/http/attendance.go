package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/pointage-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	ListAnomalies(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
	}
}

// clockBody is the optional JSON body of check-in and check-out.
type clockBody struct {
	Source attendance.Source `json:"source"`
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, body, ok := h.clockRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), attendance.CheckInRequest{
		EmployeeID: employeeID,
		Source:     body.Source,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, body, ok := h.clockRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{
		EmployeeID: employeeID,
		Source:     body.Source,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", result)
}

// GetDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.employeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetDayReport(r.Context(), employeeID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAnomalies implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAnomalies(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AnomalyFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.ListIncompleteDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Days, &response.Meta{TotalItems: int64(result.TotalCount)})
}

func (h *attendanceHandlerImpl) employeeID(r *http.Request) (string, error) {
	claims, err := h.jwtService.ClaimsFromContext(r.Context())
	if err != nil {
		return "", err
	}
	if claims.EmployeeID == "" {
		return "", auth.ErrEmployeeClaimMissing
	}
	return claims.EmployeeID, nil
}

// clockRequest resolves the caller and decodes the optional body. It writes
// the error response itself and reports false when the request cannot go on.
func (h *attendanceHandlerImpl) clockRequest(w http.ResponseWriter, r *http.Request) (string, clockBody, bool) {
	employeeID, err := h.employeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return "", clockBody{}, false
	}

	var body clockBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Failed to decode clock request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return "", clockBody{}, false
	}

	return employeeID, body, true
}
