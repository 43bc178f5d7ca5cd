package attendance

import "errors"

// Attendance domain errors. All of these are user-facing validation failures:
// they block the action entirely and are never retried.
var (
	// Check-in errors
	ErrNoShiftAssigned    = errors.New("no shift assigned for this date")
	ErrOutsideShiftWindow = errors.New("check-in time is outside every allowed shift window")
	ErrDuplicatePunch     = errors.New("a punch already exists for this day")
	ErrOpenPunchExists    = errors.New("an open punch without check-out already exists")
	ErrContractNotRunning = errors.New("employee has no running contract")
	ErrOnApprovedLeave    = errors.New("employee is on approved leave for this date")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("no open punch to check out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must not be before check-in")

	// General errors
	ErrPunchNotFound     = errors.New("attendance punch not found")
	ErrInvalidTransition = errors.New("punch state does not allow this action")
)
