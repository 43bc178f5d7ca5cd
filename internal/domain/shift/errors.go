package shift

import "errors"

var (
	ErrShiftNotFound       = errors.New("shift template not found")
	ErrAssignmentNotFound  = errors.New("shift assignment not found")
	ErrDuplicateAssignment = errors.New("this shift is already assigned on that date")
	ErrInvalidWindow       = errors.New("shift end time must be after start time")
)
