package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		presenceType PresenceType
		expected     Family
	}{
		{PresenceThumbMachine, FamilyPresent},
		{PresenceManual, FamilyPresent},
		{PresenceRemote, FamilyPresent},
		{PresenceWorkFromHome, FamilyPresent},
		{PresenceOnsitePresent, FamilyPresent},
		{PresenceWeekOffPresent, FamilyPresent},
		{PresenceOfficialHalf, FamilyPresent},
		{PresenceAbsent, FamilyLeave},
		{PresenceOnLeave, FamilyLeave},
		{PresenceHalfDay, FamilyHalfDay},
		{PresenceHoliday, FamilyHoliday},
		{PresenceWeekOff, FamilyHoliday},
		{PresenceWeekOffSpecial, FamilyHoliday},
		{PresenceOutstation, FamilyOutstation},
		{PresenceType("Something New"), FamilyUnrecognized},
		{PresenceType(""), FamilyUnrecognized},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FamilyOf(tt.presenceType), "presence type %q", tt.presenceType)
	}
}

func TestFamilyOfIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, FamilyHalfDay, FamilyOf("HALF DAY"))
	assert.Equal(t, FamilyOutstation, FamilyOf("Outstation"))
	assert.Equal(t, FamilyHoliday, FamilyOf("holiday"))
}

func TestHasPunch(t *testing.T) {
	assert.True(t, DailyRecord{CheckIn: "09:00", CheckOut: "18:00"}.HasPunch())
	assert.False(t, DailyRecord{}.HasPunch())
	assert.False(t, DailyRecord{CheckIn: "00:00", CheckOut: "00:00"}.HasPunch())
}

func TestSortedDates(t *testing.T) {
	m := NewMonthlyAttendance("u1", "2024-07")
	m.Records["2024-07-10"] = DailyRecord{}
	m.Records["2024-07-02"] = DailyRecord{}
	m.Records["2024-07-21"] = DailyRecord{}

	assert.Equal(t, []string{"2024-07-02", "2024-07-10", "2024-07-21"}, m.SortedDates())
}

func TestToResponseImposesDateOrder(t *testing.T) {
	m := NewMonthlyAttendance("u1", "2024-07")
	m.Records["2024-07-10"] = DailyRecord{PresenceType: PresenceThumbMachine}
	m.Records["2024-07-02"] = DailyRecord{PresenceType: PresenceHoliday}

	resp := ToResponse(m)
	assert.Equal(t, "2024-07-02", resp.Days[0].Date)
	assert.Equal(t, "2024-07-10", resp.Days[1].Date)
}
