package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
	UpsertDailyRecord(w http.ResponseWriter, r *http.Request)
	VerifySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	monthYear := chi.URLParam(r, "monthYear")

	resp, err := h.attendanceService.GetMonthly(r.Context(), userID, monthYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpsertDailyRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpsertDailyRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertDailyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.UpsertDailyRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily record saved", resp)
}

// VerifySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) VerifySummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	monthYear := chi.URLParam(r, "monthYear")

	if err := h.attendanceService.VerifySummary(r.Context(), userID, monthYear); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary is consistent", nil)
}
