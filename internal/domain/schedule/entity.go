package schedule

import "time"

// Designation distinguishes article (trainee) employees, whose half-day rule
// ignores worked hours.
type Designation string

const (
	DesignationArticle Designation = "article"
	DesignationRegular Designation = "regular"
)

var DesignationValues = []string{
	string(DesignationArticle),
	string(DesignationRegular),
}

// Window is a scheduled in/out pair in 24-hour local time ("HH:mm").
type Window struct {
	In  string
	Out string
}

// DefaultWindow is the hard fallback when a profile has no schedule
// configured at all. 09:00 is also the lateness baseline in that case.
var DefaultWindow = Window{In: "09:00", Out: "18:00"}

// Profile carries a user's named schedules. Owned externally; the engine
// treats it as read-only.
type Profile struct {
	UserID      string
	FullName    string
	Designation Designation

	Regular  *Window // Mon-Fri
	Saturday *Window
	Monthly  *Window // December and January, overrides regular/Saturday

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsArticle reports whether the article half-day rule applies.
func (p Profile) IsArticle() bool {
	return p.Designation == DesignationArticle
}

// Resolve returns the shift window applicable on date. The second return is
// false when the date has no scheduled work (Sunday, unless a monthly
// schedule is in force).
//
// Precedence: monthly (December/January) > Sunday sentinel > saturday >
// regular > DefaultWindow. Every caller that needs a scheduled in-time must
// go through Resolve; there is deliberately no second copy of this logic.
func Resolve(p Profile, date time.Time) (Window, bool) {
	month := date.Month()
	if (month == time.December || month == time.January) && p.Monthly != nil {
		return *p.Monthly, true
	}

	if date.Weekday() == time.Sunday {
		return Window{}, false
	}

	if date.Weekday() == time.Saturday && p.Saturday != nil {
		return *p.Saturday, true
	}

	if p.Regular != nil {
		return *p.Regular, true
	}

	return DefaultWindow, true
}
