package attendance

import (
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RawPunch is a check-in/check-out pair as it arrives from a punch machine
// import or a correction request. Times are "HH:mm"; "00:00"/"00:00" or both
// empty mean no punch.
type RawPunch struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// UpsertDailyRecordRequest writes one day for one user through the
// classifier. Used by the manual-entry surface; the punch import builds the
// same request per row.
type UpsertDailyRecordRequest struct {
	UserID       string   `json:"user_id"`
	Date         string   `json:"date"` // "YYYY-MM-DD"
	CheckIn      string   `json:"check_in,omitempty"`
	CheckOut     string   `json:"check_out,omitempty"`
	PresenceType string   `json:"presence_type,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Remarks      string   `json:"remarks,omitempty"`
	FromMachine  bool     `json:"from_machine,omitempty"`
}

func (r *UpsertDailyRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckIn != "" {
		if _, ok := validator.IsValidClockTime(r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in HH:mm format",
			})
		}
	}

	if r.CheckOut != "" {
		if _, ok := validator.IsValidClockTime(r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in HH:mm format",
			})
		}
	}

	if r.Value != nil && (*r.Value < 0 || *r.Value > 1.2) {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must be between 0 and 1.2",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlyAttendanceResponse is the read shape for one (user, month)
// aggregate with records in chronological order.
type MonthlyAttendanceResponse struct {
	UserID    string              `json:"user_id"`
	MonthYear string              `json:"month_year"`
	Days      []DailyRecordOutput `json:"days"`
	Summary   Summary             `json:"summary"`
}

type DailyRecordOutput struct {
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in,omitempty"`
	CheckOut     string  `json:"check_out,omitempty"`
	TotalHour    float64 `json:"total_hour"`
	ExcessHour   float64 `json:"excess_hour"`
	PresenceType string  `json:"presence_type"`
	HalfDay      bool    `json:"half_day"`
	Value        float64 `json:"value"`
	Remarks      string  `json:"remarks,omitempty"`
}

// ToResponse maps the aggregate to its read shape, imposing date order.
func ToResponse(m MonthlyAttendance) MonthlyAttendanceResponse {
	days := make([]DailyRecordOutput, 0, len(m.Records))
	for _, date := range m.SortedDates() {
		rec := m.Records[date]
		days = append(days, DailyRecordOutput{
			Date:         date,
			CheckIn:      rec.CheckIn,
			CheckOut:     rec.CheckOut,
			TotalHour:    rec.TotalHour,
			ExcessHour:   rec.ExcessHour,
			PresenceType: string(rec.PresenceType),
			HalfDay:      rec.HalfDay,
			Value:        rec.Value,
			Remarks:      rec.Remarks,
		})
	}

	return MonthlyAttendanceResponse{
		UserID:    m.UserID,
		MonthYear: m.MonthYear,
		Days:      days,
		Summary:   m.Summary,
	}
}
