package attendance

import (
	"time"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

// baselineHours is the daily baseline beyond which hours count as excess.
const baselineHours = 9.0

// halfDayCutoff: a check-in at or after 13:00 is a half-day candidate.
const halfDayCutoff = "13:00"

// ClassifyInput carries everything the classifier needs for one day.
// Balance is a snapshot used only for the paid/unpaid decision; the
// classifier never mutates it.
type ClassifyInput struct {
	Punch       attendance.RawPunch
	Override    attendance.PresenceType // from a correction request or manual entry; empty means infer
	FromMachine bool
	ManualValue *float64
	Remarks     string
	Profile     schedule.Profile
	Date        time.Time
	Balance     leave.Balance
}

// Classify turns a raw punch pair and an optional presence-type override
// into a classified daily record. This is the single classification path:
// manual entry, machine import, and request approval all route through it.
func Classify(in ClassifyInput) (attendance.DailyRecord, error) {
	checkIn, err := normalizeClock(in.Punch.CheckIn, "check_in")
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	checkOut, err := normalizeClock(in.Punch.CheckOut, "check_out")
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	// "00:00"/"00:00" is how punch exports encode a missed day.
	if checkIn == "00:00" && (checkOut == "" || checkOut == "00:00") {
		checkIn, checkOut = "", ""
	}
	if checkIn == "" {
		checkOut = ""
	}

	totalHour := punchHours(checkIn, checkOut)

	excessHour := 0.0
	if totalHour > baselineHours {
		excessHour = totalHour - baselineHours
	}

	presenceType := in.Override
	if presenceType == "" {
		switch {
		case checkIn == "":
			presenceType = attendance.PresenceAbsent
		case in.FromMachine:
			presenceType = attendance.PresenceThumbMachine
		default:
			presenceType = attendance.PresenceManual
		}
	}

	// Half-day is recomputed from scratch, never merged with a stored flag.
	halfDay := false
	if checkIn != "" {
		isAfterOnePM := checkIn >= halfDayCutoff
		if in.Profile.IsArticle() {
			halfDay = isAfterOnePM
		} else {
			halfDay = isAfterOnePM && totalHour < 6
		}
	}

	value := 0.0
	switch {
	case in.ManualValue != nil:
		value = *in.ManualValue
		halfDay = value > 0 && value < 1
	default:
		switch attendance.FamilyOf(presenceType) {
		case attendance.FamilyHalfDay:
			value = 0.75
			halfDay = true
		case attendance.FamilyLeave:
			value = in.Balance.UsageFor(presenceType).Value
		case attendance.FamilyHoliday:
			value = 0
		case attendance.FamilyOutstation:
			value = 1.2
		case attendance.FamilyPresent:
			// A present-like type with no worked hours is counted as absent
			// by the aggregator; the label itself is preserved.
			if totalHour > 0 {
				value = 1
			}
		default:
			value = 0
		}
	}

	return attendance.DailyRecord{
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		TotalHour:    totalHour,
		ExcessHour:   excessHour,
		PresenceType: presenceType,
		HalfDay:      halfDay,
		Value:        value,
		Remarks:      in.Remarks,
	}, nil
}

// normalizeClock parses an "HH:mm" string and returns its canonical
// zero-padded form. Empty input passes through.
func normalizeClock(s, field string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, ok := validator.IsValidClockTime(s)
	if !ok {
		return "", validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in HH:mm format",
		}}
	}
	return t.Format("15:04"), nil
}

// punchHours returns the worked hours between two canonical clock strings,
// clamped at zero. A checkout at or before checkin yields 0, not negative.
func punchHours(checkIn, checkOut string) float64 {
	if checkIn == "" || checkOut == "" {
		return 0
	}
	in, _ := time.Parse("15:04", checkIn)
	out, _ := time.Parse("15:04", checkOut)
	diff := out.Sub(in).Minutes()
	if diff <= 0 {
		return 0
	}
	return diff / 60.0
}

// IsLate reports whether the record's check-in is after the scheduled
// in-time for the date. Sunday is never late, and a missing punch is never
// late.
func IsLate(rec attendance.DailyRecord, profile schedule.Profile, date time.Time) bool {
	if rec.CheckIn == "" {
		return false
	}
	if date.Weekday() == time.Sunday {
		return false
	}
	window, ok := schedule.Resolve(profile, date)
	if !ok {
		return false
	}
	return rec.CheckIn > window.In
}
