package response

import (
	"errors"
	"net/http"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Schedule domain errors
	case errors.Is(err, schedule.ErrProfileNotFound):
		NotFound(w, "Schedule profile not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrSummaryDrift):
		InternalServerError(w, "Stored summary does not match records")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Correction request already processed")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrNoAttendanceActivity):
		BadRequest(w, "No attendance activity for accrual month", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
