package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string, companyID string) (Request, error)
	Update(ctx context.Context, req Request) error

	// ListApprovedOverlapping returns the employee's requests in approve or
	// confirm state whose range overlaps [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)

	// ListHolidayOverlapping returns company-wide HOLIDAY-type requests
	// overlapping [from, to], regardless of employee.
	ListHolidayOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]Request, error)

	// HasApprovedLeaveOn reports whether the employee has an approved or
	// confirmed leave covering the given calendar date.
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
