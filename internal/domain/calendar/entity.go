package calendar

import "time"

// Holiday is a non-working date for one country.
type Holiday struct {
	ID        string
	Date      time.Time
	Country   string
	Name      string
	CreatedAt time.Time
}

// Day describes how the calendar treats one civil date.
type Day struct {
	Date       time.Time
	WeeklyRest bool
	Holiday    *Holiday
}

// IsRestDay reports whether attendance rules are relaxed on this date.
func (d Day) IsRestDay() bool {
	return d.WeeklyRest || d.Holiday != nil
}

// Reason explains why the day is a rest day, or "" for a working day.
func (d Day) Reason() string {
	switch {
	case d.Holiday != nil && d.Holiday.Name != "":
		return "holiday: " + d.Holiday.Name
	case d.Holiday != nil:
		return "holiday"
	case d.WeeklyRest:
		return "weekly rest day"
	default:
		return ""
	}
}
