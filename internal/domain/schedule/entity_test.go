package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveRegularWeekday(t *testing.T) {
	p := Profile{
		UserID:   "u1",
		Regular:  &Window{In: "09:30", Out: "18:30"},
		Saturday: &Window{In: "10:00", Out: "14:00"},
	}

	// 2024-07-01 is a Monday
	window, ok := Resolve(p, date("2024-07-01"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "09:30", Out: "18:30"}, window)
}

func TestResolveSaturday(t *testing.T) {
	p := Profile{
		UserID:   "u1",
		Regular:  &Window{In: "09:30", Out: "18:30"},
		Saturday: &Window{In: "10:00", Out: "14:00"},
	}

	// 2024-07-06 is a Saturday
	window, ok := Resolve(p, date("2024-07-06"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "10:00", Out: "14:00"}, window)
}

func TestResolveSaturdayFallsBackToRegular(t *testing.T) {
	p := Profile{
		UserID:  "u1",
		Regular: &Window{In: "09:30", Out: "18:30"},
	}

	window, ok := Resolve(p, date("2024-07-06"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "09:30", Out: "18:30"}, window)
}

func TestResolveSundayHasNoWork(t *testing.T) {
	p := Profile{
		UserID:   "u1",
		Regular:  &Window{In: "09:30", Out: "18:30"},
		Saturday: &Window{In: "10:00", Out: "14:00"},
		Monthly:  &Window{In: "08:00", Out: "17:00"},
	}

	// 2024-07-07 is a Sunday and July has no monthly schedule in force
	_, ok := Resolve(p, date("2024-07-07"))
	assert.False(t, ok)
}

func TestResolveMonthlyOverridesSundayInDecember(t *testing.T) {
	p := Profile{
		UserID:  "u1",
		Regular: &Window{In: "09:30", Out: "18:30"},
		Monthly: &Window{In: "08:00", Out: "17:00"},
	}

	// 2024-12-15 is a Sunday, but the monthly schedule is in force in
	// December and wins over the Sunday rule.
	window, ok := Resolve(p, date("2024-12-15"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "08:00", Out: "17:00"}, window)
}

func TestResolveMonthlyIgnoredOutsideDecemberJanuary(t *testing.T) {
	p := Profile{
		UserID:  "u1",
		Regular: &Window{In: "09:30", Out: "18:30"},
		Monthly: &Window{In: "08:00", Out: "17:00"},
	}

	window, ok := Resolve(p, date("2024-07-01"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "09:30", Out: "18:30"}, window)
}

func TestResolveMonthlyAppliesInJanuary(t *testing.T) {
	p := Profile{
		UserID:  "u1",
		Monthly: &Window{In: "08:00", Out: "17:00"},
	}

	// 2025-01-06 is a Monday
	window, ok := Resolve(p, date("2025-01-06"))
	require.True(t, ok)
	assert.Equal(t, Window{In: "08:00", Out: "17:00"}, window)
}

func TestResolveDefaultWindow(t *testing.T) {
	p := Profile{UserID: "u1"}

	window, ok := Resolve(p, date("2024-07-01"))
	require.True(t, ok)
	assert.Equal(t, DefaultWindow, window)
}

func TestIsArticle(t *testing.T) {
	assert.True(t, Profile{Designation: DesignationArticle}.IsArticle())
	assert.False(t, Profile{Designation: DesignationRegular}.IsArticle())
	assert.False(t, Profile{}.IsArticle())
}
