package attendance

import (
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
)

// OvertimeScope controls which side of the shift counts as overtime.
const (
	OvertimeAfterOnly      = "after_only"
	OvertimeBeforeAndAfter = "before_and_after"
)

// Policy holds the classification knobs loaded from configuration.
type Policy struct {
	GraceMinutes     int
	ClampToShift     bool
	OvertimeScope    string
	MaxPunchesPerDay int
}

// DefaultPolicy mirrors the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		GraceMinutes:     30,
		ClampToShift:     true,
		OvertimeScope:    OvertimeAfterOnly,
		MaxPunchesPerDay: 1,
	}
}

// Classification is the derived state for one punch.
type Classification struct {
	ShiftID              string
	IsLate               bool
	IsEarly              bool
	WorkedHours          float64
	OvertimeNormalHours  float64
	OvertimeHolidayHours float64
	IsHoliday            bool
}

// LocalDayBoundsUTC returns the UTC instants bounding the local calendar day
// that contains t in loc. The upper bound is exclusive.
func LocalDayBoundsUTC(t time.Time, loc *time.Location) (from, to time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// LocalDate returns the calendar date of t in loc, normalized to midnight UTC
// for storage and set membership.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// shiftBoundsUTC resolves a template's planned start and end as UTC instants
// on the given calendar date in the employee's zone.
func shiftBoundsUTC(tpl shift.Template, date time.Time, loc *time.Location) (start, end time.Time) {
	sh, sm := shift.ClockParts(tpl.StartTime)
	eh, em := shift.ClockParts(tpl.EndTime)
	start = time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, loc).UTC()
	end = time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, loc).UTC()
	return start, end
}

// Classify matches a check-in against the day's assignments and derives the
// punch flags and hour buckets. Assignments must be ordered by shift start
// time; the first whose window contains the check-in wins. The window opens
// GraceMinutes before the planned start and closes at the planned end.
//
// Returns ErrNoShiftAssigned when the employee has no assignment that day and
// ErrOutsideShiftWindow when assignments exist but none admit the check-in.
func Classify(checkIn time.Time, checkOut *time.Time, assignments []shift.Assignment, loc *time.Location, isHoliday bool, policy Policy) (Classification, error) {
	if len(assignments) == 0 {
		return Classification{}, attendance.ErrNoShiftAssigned
	}

	grace := time.Duration(policy.GraceMinutes) * time.Minute

	var matched *shift.Assignment
	var plannedStart, plannedEnd time.Time
	for i := range assignments {
		a := assignments[i]
		if a.Shift == nil {
			continue
		}
		start, end := shiftBoundsUTC(*a.Shift, a.Date, loc)
		windowOpen := start.Add(-grace)
		if !checkIn.Before(windowOpen) && !checkIn.After(end) {
			matched = &assignments[i]
			plannedStart, plannedEnd = start, end
			break
		}
	}
	if matched == nil {
		return Classification{}, attendance.ErrOutsideShiftWindow
	}

	c := Classification{
		ShiftID:   matched.ShiftID,
		IsLate:    checkIn.After(plannedStart),
		IsHoliday: isHoliday,
	}

	if checkOut == nil {
		return c, nil
	}
	out := *checkOut
	if out.Before(checkIn) {
		return Classification{}, attendance.ErrCheckOutBeforeCheckIn
	}

	c.IsEarly = out.Before(plannedEnd)

	// Worked hours are the overlap with the planned window unless the policy
	// keeps raw hours.
	workStart, workEnd := checkIn, out
	if policy.ClampToShift {
		if workStart.Before(plannedStart) {
			workStart = plannedStart
		}
		if workEnd.After(plannedEnd) {
			workEnd = plannedEnd
		}
	}
	if workEnd.After(workStart) {
		c.WorkedHours = workEnd.Sub(workStart).Hours()
	}

	overtime := 0.0
	if out.After(plannedEnd) {
		overtime += out.Sub(plannedEnd).Hours()
	}
	if policy.OvertimeScope == OvertimeBeforeAndAfter && checkIn.Before(plannedStart) {
		overtime += plannedStart.Sub(checkIn).Hours()
	}
	if isHoliday {
		c.OvertimeHolidayHours = overtime
	} else {
		c.OvertimeNormalHours = overtime
	}

	return c, nil
}
