package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance punches.
// All lookups include companyID to prevent cross-company data access.
type Repository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)
	Update(ctx context.Context, punch Punch) error
	GetByID(ctx context.Context, id string, companyID string) (Punch, error)
	Delete(ctx context.Context, id string, companyID string) error

	// GetOpenPunch returns the employee's punch with no check-out, if any.
	// Used to forbid a second open punch and to resolve check-out targets.
	GetOpenPunch(ctx context.Context, employeeID string) (*Punch, error)

	// CountPunchesBetween counts punches whose check-in falls inside the UTC
	// bounds of the employee's local day. Enforces the configured per-day
	// punch limit; concurrent first punches are caught by the one-open-punch
	// index instead.
	CountPunchesBetween(ctx context.Context, employeeID string, fromUTC, toUTC time.Time) (int, error)

	// ListForPeriod returns punches whose check-in is in [from, to).
	ListForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Punch, error)
	List(ctx context.Context, filter Filter, companyID string) ([]Punch, int64, error)

	// SummarizePeriod aggregates confirmed and validated punches per employee
	// for payroll: total worked hours, distinct worked days, overtime buckets.
	SummarizePeriod(ctx context.Context, employeeID string, from, to time.Time) (Summary, error)
}
