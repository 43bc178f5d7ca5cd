package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"github.com/forher-hr/hr-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	structureRepo payroll.StructureRepository
	payslipRepo   payroll.PayslipRepository
	runRepo       payroll.RunRepository
	salesRepo     payroll.SalesDataRepository
	contractRepo  contract.Repository
	employeeRepo  employee.Repository
	aggregator    *Aggregator

	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewPayrollService(
	db *database.DB,
	structureRepo payroll.StructureRepository,
	payslipRepo payroll.PayslipRepository,
	runRepo payroll.RunRepository,
	salesRepo payroll.SalesDataRepository,
	contractRepo contract.Repository,
	employeeRepo employee.Repository,
	aggregator *Aggregator,
) payroll.Service {
	return &PayrollServiceImpl{
		structureRepo: structureRepo,
		payslipRepo:   payslipRepo,
		runRepo:       runRepo,
		salesRepo:     salesRepo,
		contractRepo:  contractRepo,
		employeeRepo:  employeeRepo,
		aggregator:    aggregator,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// ===== STRUCTURES & RULES =====

// CreateStructure implements payroll.Service.
func (s *PayrollServiceImpl) CreateStructure(ctx context.Context, companyID string, req payroll.CreateStructureRequest) (payroll.SalaryStructure, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryStructure{}, err
	}

	structure := payroll.SalaryStructure{
		CompanyID: companyID,
		Name:      req.Name,
		Active:    true,
		Note:      req.Note,
	}
	created, err := s.structureRepo.CreateStructure(ctx, structure)
	if err != nil {
		return payroll.SalaryStructure{}, fmt.Errorf("create structure: %w", err)
	}
	return created, nil
}

// GetStructure implements payroll.Service.
func (s *PayrollServiceImpl) GetStructure(ctx context.Context, id string, companyID string) (payroll.SalaryStructure, error) {
	return s.structureRepo.GetStructure(ctx, id, companyID)
}

// ListStructures implements payroll.Service.
func (s *PayrollServiceImpl) ListStructures(ctx context.Context, companyID string) ([]payroll.SalaryStructure, error) {
	return s.structureRepo.ListStructures(ctx, companyID, false)
}

// CreateRule implements payroll.Service.
func (s *PayrollServiceImpl) CreateRule(ctx context.Context, companyID string, req payroll.CreateRuleRequest) (payroll.SalaryRule, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRule{}, err
	}

	structure, err := s.structureRepo.GetStructure(ctx, req.StructureID, companyID)
	if err != nil {
		return payroll.SalaryRule{}, err
	}

	code := payroll.NormalizeCode(req.Code)
	for _, r := range structure.Rules {
		if r.Code == code {
			return payroll.SalaryRule{}, payroll.ErrRuleCodeExists
		}
	}

	rule := payroll.SalaryRule{
		StructureID:   structure.ID,
		Name:          req.Name,
		Code:          code,
		Sequence:      req.Sequence,
		RuleType:      payroll.RuleType(req.RuleType),
		Formula:       req.Formula,
		AlwaysInclude: req.AlwaysInclude,
		Description:   req.Description,
	}
	created, err := s.structureRepo.CreateRule(ctx, rule)
	if err != nil {
		return payroll.SalaryRule{}, fmt.Errorf("create rule: %w", err)
	}
	return created, nil
}

// DeleteRule implements payroll.Service.
func (s *PayrollServiceImpl) DeleteRule(ctx context.Context, id string, companyID string) error {
	return s.structureRepo.DeleteRule(ctx, id, companyID)
}

// ===== PAYSLIPS =====

func toPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:             p.ID,
		Number:         p.Number,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		ContractID:     p.ContractID,
		StructureID:    p.StructureID,
		RunID:          p.RunID,
		DateFrom:       p.DateFrom.Format("2006-01-02"),
		DateTo:         p.DateTo.Format("2006-01-02"),
		State:          string(p.State),
		TotalGross:     p.TotalGross,
		TotalDeduction: p.TotalDeduction,
		TotalNet:       p.TotalNet,
		Lines:          make([]payroll.PayslipLineResponse, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		resp.Lines = append(resp.Lines, payroll.PayslipLineResponse{
			Code:     l.Code,
			Name:     l.Name,
			RuleType: string(l.RuleType),
			Sequence: l.Sequence,
			Quantity: l.Quantity,
			Rate:     l.Rate,
			Amount:   l.Amount,
		})
	}
	return resp
}

// payslipNumber derives the display number from the period and employee code.
func payslipNumber(dateFrom time.Time, employeeCode string) string {
	return fmt.Sprintf("SLIP/%s/%s", dateFrom.Format("2006/01"), employeeCode)
}

// buildPayslip resolves the employee's running contract and prepares a draft
// payslip for the period. The contract must carry a salary structure.
func (s *PayrollServiceImpl) buildPayslip(ctx context.Context, companyID, employeeID string, dateFrom, dateTo time.Time, runID *string) (payroll.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("get employee: %w", err)
	}
	if emp.CompanyID != companyID {
		return payroll.Payslip{}, employee.ErrEmployeeNotFound
	}

	c, err := s.contractRepo.GetRunningByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if c.SalaryStructureID == nil {
		return payroll.Payslip{}, payroll.ErrMissingSalaryStructure
	}

	return payroll.Payslip{
		Number:      payslipNumber(dateFrom, emp.Code),
		EmployeeID:  employeeID,
		ContractID:  c.ID,
		StructureID: *c.SalaryStructureID,
		RunID:       runID,
		CompanyID:   companyID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		State:       payroll.PayslipStateDraft,
	}, nil
}

// CreatePayslip implements payroll.Service.
func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, companyID string, req payroll.CreatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	dateFrom, _ := validator.IsValidDate(req.DateFrom)
	dateTo, _ := validator.IsValidDate(req.DateTo)
	if dateFrom.After(dateTo) {
		return payroll.PayslipResponse{}, payroll.ErrInvalidPeriod
	}

	slip, err := s.buildPayslip(ctx, companyID, req.EmployeeID, dateFrom, dateTo, nil)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	created, err := s.payslipRepo.Create(ctx, slip)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("create payslip: %w", err)
	}
	return toPayslipResponse(created), nil
}

// GetPayslip implements payroll.Service.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string, companyID string) (payroll.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return toPayslipResponse(slip), nil
}

// ListPayslips implements payroll.Service.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter, companyID string) ([]payroll.PayslipResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	slips, total, err := s.payslipRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("list payslips: %w", err)
	}

	out := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toPayslipResponse(slip))
	}
	return out, total, nil
}

// UpdatePayslipInputs implements payroll.Service.
func (s *PayrollServiceImpl) UpdatePayslipInputs(ctx context.Context, companyID string, req payroll.UpdatePayslipInputsRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.payslipRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if slip.State == payroll.PayslipStateDone {
		return payroll.PayslipResponse{}, payroll.ErrPayslipDone
	}

	if req.LeaveDays != nil {
		slip.LeaveDays = *req.LeaveDays
	}
	if req.OTNormalHours != nil {
		slip.OTNormalHours = *req.OTNormalHours
	}
	if req.OTHolidayHours != nil {
		slip.OTHolidayHours = *req.OTHolidayHours
	}
	if req.Rating != nil {
		slip.Rating = *req.Rating
	}
	if req.AdvanceAmount != nil {
		slip.AdvanceAmount = *req.AdvanceAmount
	}
	if req.PenaltyAmount != nil {
		slip.PenaltyAmount = *req.PenaltyAmount
	}

	if err := s.payslipRepo.UpdateInputs(ctx, slip); err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("update payslip inputs: %w", err)
	}
	return toPayslipResponse(slip), nil
}

// computePayslip evaluates the slip's salary structure and atomically replaces
// its lines. Recomputing is allowed until the slip is confirmed.
func (s *PayrollServiceImpl) computePayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	if slip.State != payroll.PayslipStateDraft && slip.State != payroll.PayslipStateComputed {
		return payroll.Payslip{}, payroll.ErrInvalidState
	}

	c, err := s.contractRepo.GetByID(ctx, slip.ContractID, slip.CompanyID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("get contract: %w", err)
	}
	emp, err := s.employeeRepo.GetByID(ctx, slip.EmployeeID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("get employee: %w", err)
	}

	structure, err := s.structureRepo.GetStructure(ctx, slip.StructureID, slip.CompanyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	rctx, err := s.aggregator.BuildContext(ctx, slip, c, emp)
	if err != nil {
		return payroll.Payslip{}, err
	}

	computed, err := EvaluateStructure(structure, rctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	slip.Lines = make([]payroll.PayslipLine, 0, len(computed))
	for _, line := range computed {
		ruleID := line.Rule.ID
		slip.Lines = append(slip.Lines, payroll.PayslipLine{
			PayslipID: slip.ID,
			RuleID:    &ruleID,
			Name:      line.Rule.Name,
			Code:      line.Rule.Code,
			Sequence:  line.Rule.Sequence,
			RuleType:  line.Rule.RuleType,
			Quantity:  line.Quantity,
			Rate:      line.Rate,
			Amount:    line.Amount,
		})
	}
	slip.RecomputeTotals()
	slip.State = payroll.PayslipStateComputed

	err = s.withTx(ctx, func(txCtx context.Context) error {
		return s.payslipRepo.ReplaceLines(txCtx, slip)
	})
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("replace payslip lines: %w", err)
	}
	return slip, nil
}

// ComputePayslip implements payroll.Service.
func (s *PayrollServiceImpl) ComputePayslip(ctx context.Context, id string, companyID string) (payroll.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	computed, err := s.computePayslip(ctx, slip)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return toPayslipResponse(computed), nil
}

// ConfirmPayslip implements payroll.Service.
func (s *PayrollServiceImpl) ConfirmPayslip(ctx context.Context, id string, companyID string) error {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if slip.State != payroll.PayslipStateComputed {
		return payroll.ErrInvalidState
	}
	if len(slip.Lines) == 0 {
		return payroll.ErrPayslipNotComputed
	}
	return s.payslipRepo.UpdateState(ctx, id, payroll.PayslipStateConfirmed)
}

// DonePayslip implements payroll.Service.
func (s *PayrollServiceImpl) DonePayslip(ctx context.Context, id string, companyID string) error {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if slip.State != payroll.PayslipStateConfirmed {
		return payroll.ErrInvalidState
	}
	return s.payslipRepo.UpdateState(ctx, id, payroll.PayslipStateDone)
}

// CancelPayslip implements payroll.Service.
func (s *PayrollServiceImpl) CancelPayslip(ctx context.Context, id string, companyID string) error {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if slip.State == payroll.PayslipStateDone {
		return payroll.ErrPayslipDone
	}
	return s.payslipRepo.UpdateState(ctx, id, payroll.PayslipStateCancelled)
}

// ResetPayslip implements payroll.Service.
func (s *PayrollServiceImpl) ResetPayslip(ctx context.Context, id string, companyID string) error {
	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if slip.State == payroll.PayslipStateDone {
		return payroll.ErrPayslipDone
	}

	return s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.payslipRepo.ClearLines(txCtx, id); err != nil {
			return fmt.Errorf("clear payslip lines: %w", err)
		}
		return s.payslipRepo.UpdateState(txCtx, id, payroll.PayslipStateDraft)
	})
}

// ===== SALES DATA =====

// ImportSales implements payroll.Service. Rows reference employees by code;
// an unknown code fails the whole import.
func (s *PayrollServiceImpl) ImportSales(ctx context.Context, companyID string, req payroll.ImportSalesRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	run, err := s.runRepo.GetByID(ctx, req.RunID, companyID)
	if err != nil {
		return 0, err
	}

	records := make([]payroll.SalesData, 0, len(req.Rows))
	for _, row := range req.Rows {
		emp, err := s.employeeRepo.GetByCode(ctx, row.EmployeeCode, companyID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return 0, fmt.Errorf("sales row for code %s: %w", row.EmployeeCode, err)
			}
			return 0, fmt.Errorf("resolve employee code %s: %w", row.EmployeeCode, err)
		}

		date := run.DateStart
		if row.Date != "" {
			if d, ok := validator.IsValidDate(row.Date); ok {
				date = d
			}
		}

		records = append(records, payroll.SalesData{
			RunID:        &run.ID,
			EmployeeID:   emp.ID,
			CompanyID:    companyID,
			Date:         date,
			Amount:       row.Amount,
			ProductsSold: row.ProductsSold,
			Reference:    row.Reference,
		})
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		return s.salesRepo.BulkCreate(txCtx, records)
	})
	if err != nil {
		return 0, fmt.Errorf("import sales data: %w", err)
	}
	return len(records), nil
}
