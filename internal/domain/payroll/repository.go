package payroll

import (
	"context"
	"time"
)

// StructureRepository defines data access for salary structures and rules.
type StructureRepository interface {
	CreateStructure(ctx context.Context, s SalaryStructure) (SalaryStructure, error)
	// GetStructure loads the structure with its rules ordered by ascending
	// sequence, the order the engine executes them in.
	GetStructure(ctx context.Context, id string, companyID string) (SalaryStructure, error)
	ListStructures(ctx context.Context, companyID string, activeOnly bool) ([]SalaryStructure, error)
	CreateRule(ctx context.Context, r SalaryRule) (SalaryRule, error)
	UpdateRule(ctx context.Context, r SalaryRule) error
	DeleteRule(ctx context.Context, id string, companyID string) error
}

// PayslipRepository defines data access for payslips and their lines.
type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	List(ctx context.Context, filter PayslipFilter, companyID string) ([]Payslip, int64, error)
	ListByRun(ctx context.Context, runID string) ([]Payslip, error)
	UpdateState(ctx context.Context, id string, state PayslipState) error
	UpdateInputs(ctx context.Context, p Payslip) error

	// ReplaceLines atomically swaps the payslip's entire line set and totals
	// and moves it to the given state. A failed computation must never leave a
	// partial line list behind.
	ReplaceLines(ctx context.Context, p Payslip) error

	// ClearLines removes every line, used by reset-to-draft.
	ClearLines(ctx context.Context, id string) error
}

// RunRepository defines data access for payslip runs.
type RunRepository interface {
	Create(ctx context.Context, r Run) (Run, error)
	GetByID(ctx context.Context, id string, companyID string) (Run, error)
	List(ctx context.Context, companyID string) ([]Run, error)
	UpdateState(ctx context.Context, id string, state RunState) error
}

// SalesDataRepository defines data access for imported sales figures.
type SalesDataRepository interface {
	Create(ctx context.Context, s SalesData) (SalesData, error)
	BulkCreate(ctx context.Context, records []SalesData) error
	// ListForRun returns the employee's sales rows attached to the run.
	ListForRun(ctx context.Context, runID string, employeeID string) ([]SalesData, error)
	// ListForPeriod returns the employee's sales rows dated in [from, to],
	// used for standalone payslips with no run.
	ListForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]SalesData, error)
}
