package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrInvalidDateRange = errors.New("leave end date must not be before start date")
	ErrAlreadyProcessed = errors.New("leave request has already been approved or rejected")
)
