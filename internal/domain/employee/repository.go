package employee

import (
	"context"
	"time"
)

// Repository defines data access for employees.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
}

// TimezoneResolver resolves an employee's IANA timezone, defaulting to UTC.
// Wrapped separately so services depending only on zone lookup stay narrow.
type TimezoneResolver interface {
	ResolveTimezone(ctx context.Context, employeeID string) (*time.Location, error)
}
