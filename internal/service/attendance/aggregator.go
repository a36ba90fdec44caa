package attendance

import (
	"math"
	"strings"
	"time"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
)

// Aggregate recomputes the monthly summary from the full records map. It is
// a pure function of (records, profile); it never patches counters
// incrementally, so a drifted summary heals on the next write.
func Aggregate(records map[string]attendance.DailyRecord, profile schedule.Profile) attendance.Summary {
	var s attendance.Summary

	for dateStr, rec := range records {
		s.TotalHour += rec.TotalHour
		s.ExcessHour += rec.ExcessHour

		if rec.HalfDay {
			s.TotalHalfDay++
		}

		switch attendance.FamilyOf(rec.PresenceType) {
		case attendance.FamilyHoliday:
			// Holidays and week-offs fall outside the present/absent/leave
			// buckets entirely.
		case attendance.FamilyLeave:
			// Absent shares the leave family for value purposes but counts
			// in its own bucket.
			if strings.Contains(strings.ToLower(string(rec.PresenceType)), "absent") {
				s.TotalAbsent++
			} else {
				s.TotalLeave++
			}
		case attendance.FamilyHalfDay, attendance.FamilyOutstation:
			s.TotalPresent++
		case attendance.FamilyPresent:
			if rec.TotalHour > 0 {
				s.TotalPresent++
			} else {
				s.TotalAbsent++
			}
		default:
			s.TotalAbsent++
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if IsLate(rec, profile, date) {
			s.TotalLateArrival++
		}
	}

	return s
}

// SummariesEqual compares two summaries field by field, with a tolerance on
// the hour totals since they are sums of floats.
func SummariesEqual(a, b attendance.Summary) bool {
	const eps = 1e-9
	return math.Abs(a.TotalHour-b.TotalHour) < eps &&
		math.Abs(a.ExcessHour-b.ExcessHour) < eps &&
		a.TotalLateArrival == b.TotalLateArrival &&
		a.TotalHalfDay == b.TotalHalfDay &&
		a.TotalPresent == b.TotalPresent &&
		a.TotalAbsent == b.TotalAbsent &&
		a.TotalLeave == b.TotalLeave
}
