package attendance

import (
	"sort"
	"strings"
	"time"
)

// PresenceType is the categorical status of one day. The set is open on the
// write side (manually entered statuses are accepted as-is) but aggregation
// behavior is decided by Family, defined once below.
type PresenceType string

const (
	PresenceThumbMachine   PresenceType = "ThumbMachine"
	PresenceManual         PresenceType = "Manual"
	PresenceRemote         PresenceType = "Remote"
	PresenceWorkFromHome   PresenceType = "Work From Home"
	PresenceOnsite         PresenceType = "Onsite Presence"
	PresenceOnsitePresent  PresenceType = "OS-P"
	PresenceWeekOffPresent PresenceType = "WO-Present"
	PresenceOfficialHalf   PresenceType = "OHD"
	PresenceAbsent         PresenceType = "Absent"
	PresenceOnLeave        PresenceType = "On leave"
	PresenceHalfDay        PresenceType = "Half Day (HD)"
	PresenceHoliday        PresenceType = "Holiday"
	PresenceWeekOff        PresenceType = "Week Off"
	PresenceWeekOffSpecial PresenceType = "Weekoff - special allowance"
	PresenceOutstation     PresenceType = "outstation"
)

// Family groups presence types that share aggregation behavior.
type Family string

const (
	FamilyPresent      Family = "present"
	FamilyLeave        Family = "leave"
	FamilyHoliday      Family = "holiday"
	FamilyHalfDay      Family = "half_day"
	FamilyOutstation   Family = "outstation"
	FamilyUnrecognized Family = "unrecognized"
)

var presentLike = map[PresenceType]bool{
	PresenceThumbMachine:   true,
	PresenceManual:         true,
	PresenceRemote:         true,
	PresenceWorkFromHome:   true,
	PresenceOnsite:         true,
	PresenceOnsitePresent:  true,
	PresenceWeekOffPresent: true,
	PresenceOfficialHalf:   true,
}

// FamilyOf maps a presence type to its aggregation family. Unknown strings
// fall into FamilyUnrecognized, which counts as Absent downstream; they are
// never rejected, matching the permissive nature of manually entered
// statuses.
func FamilyOf(pt PresenceType) Family {
	lower := strings.ToLower(string(pt))

	switch {
	case strings.Contains(lower, "half day"):
		return FamilyHalfDay
	case strings.Contains(lower, "outstation"):
		return FamilyOutstation
	case presentLike[pt]:
		return FamilyPresent
	case strings.Contains(lower, "absent"), strings.Contains(lower, "leave"):
		return FamilyLeave
	case strings.Contains(lower, "holiday"), strings.Contains(lower, "week off"), strings.Contains(lower, "weekoff"):
		return FamilyHoliday
	default:
		return FamilyUnrecognized
	}
}

// DailyRecord is one calendar date for one user. CheckIn/CheckOut hold
// canonical "HH:mm" strings; empty means no punch.
type DailyRecord struct {
	CheckIn      string
	CheckOut     string
	TotalHour    float64
	ExcessHour   float64 // hours beyond the 9-hour baseline
	PresenceType PresenceType
	HalfDay      bool
	Value        float64 // fractional attendance credit in [0, 1.2]
	Remarks      string
}

// HasPunch reports whether the record carries a usable punch pair.
func (r DailyRecord) HasPunch() bool {
	return r.CheckIn != "" && !(r.CheckIn == "00:00" && (r.CheckOut == "" || r.CheckOut == "00:00"))
}

// Summary holds the derived monthly counters. It is never authored directly;
// the aggregator recomputes it in full after every record mutation.
type Summary struct {
	TotalHour        float64
	TotalLateArrival int
	ExcessHour       float64
	TotalHalfDay     int
	TotalPresent     int
	TotalAbsent      int
	TotalLeave       int
}

// MonthlyAttendance is the (user, month) aggregate: date-keyed records plus
// the derived summary. Saved as a single document; the summary must always
// reflect the records map.
type MonthlyAttendance struct {
	ID        string
	UserID    string
	MonthYear string // "YYYY-MM"
	Records   map[string]DailyRecord
	Summary   Summary
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMonthlyAttendance creates an empty aggregate for a user and month.
func NewMonthlyAttendance(userID, monthYear string) MonthlyAttendance {
	return MonthlyAttendance{
		UserID:    userID,
		MonthYear: monthYear,
		Records:   make(map[string]DailyRecord),
	}
}

// SortedDates returns the record keys in chronological order. Storage order
// is unspecified; reads impose the ordering.
func (m MonthlyAttendance) SortedDates() []string {
	dates := make([]string, 0, len(m.Records))
	for date := range m.Records {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
