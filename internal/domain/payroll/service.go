package payroll

import "context"

type Service interface {
	// Salary structures and rules
	CreateStructure(ctx context.Context, companyID string, req CreateStructureRequest) (SalaryStructure, error)
	GetStructure(ctx context.Context, id string, companyID string) (SalaryStructure, error)
	ListStructures(ctx context.Context, companyID string) ([]SalaryStructure, error)
	CreateRule(ctx context.Context, companyID string, req CreateRuleRequest) (SalaryRule, error)
	DeleteRule(ctx context.Context, id string, companyID string) error

	// Payslips
	CreatePayslip(ctx context.Context, companyID string, req CreatePayslipRequest) (PayslipResponse, error)
	GetPayslip(ctx context.Context, id string, companyID string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter, companyID string) ([]PayslipResponse, int64, error)
	UpdatePayslipInputs(ctx context.Context, companyID string, req UpdatePayslipInputsRequest) (PayslipResponse, error)
	ComputePayslip(ctx context.Context, id string, companyID string) (PayslipResponse, error)
	ConfirmPayslip(ctx context.Context, id string, companyID string) error
	DonePayslip(ctx context.Context, id string, companyID string) error
	CancelPayslip(ctx context.Context, id string, companyID string) error
	ResetPayslip(ctx context.Context, id string, companyID string) error

	// Runs
	CreateRun(ctx context.Context, companyID string, req CreateRunRequest) (RunResponse, error)
	GetRun(ctx context.Context, id string, companyID string) (RunResponse, error)
	ListRuns(ctx context.Context, companyID string) ([]RunResponse, error)
	// GeneratePayslips creates a draft payslip per eligible contract.
	// Re-running skips employees that already have one in the run.
	GeneratePayslips(ctx context.Context, runID string, companyID string) (RunResponse, error)
	ComputeRun(ctx context.Context, runID string, companyID string) error
	ValidateRun(ctx context.Context, runID string, companyID string) error
	DoneRun(ctx context.Context, runID string, companyID string) error
	CancelRun(ctx context.Context, runID string, companyID string) error
	ResetRun(ctx context.Context, runID string, companyID string) error

	// Sales data
	ImportSales(ctx context.Context, companyID string, req ImportSalesRequest) (int, error)
}
