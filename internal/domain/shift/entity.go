package shift

import (
	"fmt"
	"time"
)

// Template is a named shift window. Start and end are fractional hours of the
// local day, e.g. 8.5 = 08:30.
type Template struct {
	ID        string
	CompanyID string
	Name      string
	Code      string
	StartTime float64
	EndTime   float64
	Sequence  int
	Active    bool
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the planned shift length in hours, clamped to zero.
func (t Template) Duration() float64 {
	if t.EndTime > t.StartTime {
		return t.EndTime - t.StartTime
	}
	return 0.0
}

// Label renders the template the way schedules display it, e.g. "Morning (08:30-17:00)".
func (t Template) Label() string {
	return fmt.Sprintf("%s (%s-%s)", t.Name, FormatClock(t.StartTime), FormatClock(t.EndTime))
}

// ClockParts splits a fractional hour into hour and minute components.
func ClockParts(fractional float64) (hour, minute int) {
	hour = int(fractional)
	minute = int((fractional - float64(hour)) * 60.0)
	return hour, minute
}

// FormatClock renders a fractional hour as "HH:MM".
func FormatClock(fractional float64) string {
	h, m := ClockParts(fractional)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Assignment places one or more employees on a template for a calendar date.
// At most one assignment may exist per (template, date, company); a single
// employee may still be covered by several assignments on the same date when
// working multiple shifts.
type Assignment struct {
	ID          string
	ShiftID     string
	CompanyID   string
	Date        time.Time // calendar date, midnight UTC
	EmployeeIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for display and classification
	Shift *Template
}
