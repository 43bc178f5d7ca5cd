package contract

import (
	"context"
	"time"
)

// Repository defines data access for contracts. Contracts are always looked
// up on demand by (employee, as-of) rather than cached on related records.
type Repository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, id string, companyID string) (Contract, error)
	Update(ctx context.Context, c Contract) error

	// GetRunningByEmployee returns the employee's contract in a running state,
	// most recent start date first, or ErrNoRunningContract.
	GetRunningByEmployee(ctx context.Context, employeeID string) (Contract, error)

	// ListEligible returns contracts that are running, have a salary structure
	// assigned, and overlap [from, to]. Payslip run generation iterates this set.
	ListEligible(ctx context.Context, companyID string, from, to time.Time) ([]Contract, error)
}
