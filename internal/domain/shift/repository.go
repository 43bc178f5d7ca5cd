package shift

import (
	"context"
	"time"
)

// TemplateRepository defines data access for shift templates.
// All methods include companyID to keep branches isolated.
type TemplateRepository interface {
	Create(ctx context.Context, tpl Template) (Template, error)
	GetByID(ctx context.Context, id string, companyID string) (Template, error)
	GetByCode(ctx context.Context, code string, companyID string) (Template, error)
	List(ctx context.Context, companyID string, activeOnly bool) ([]Template, error)
	Update(ctx context.Context, tpl Template) error
	Delete(ctx context.Context, id string, companyID string) error
}

// AssignmentRepository defines data access for per-day shift assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string, companyID string) (Assignment, error)
	// ListForEmployeeOnDate returns every assignment covering the employee on
	// the given calendar date, shift template attached, ordered by shift start
	// time then id. The classifier walks this order when matching a punch.
	ListForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]Assignment, error)
	ListForDateRange(ctx context.Context, companyID string, from, to time.Time) ([]Assignment, error)
	Delete(ctx context.Context, id string, companyID string) error
}
