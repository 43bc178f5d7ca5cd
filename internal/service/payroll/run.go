package payroll

import (
	"context"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

func (s *PayrollServiceImpl) toRunResponse(ctx context.Context, run payroll.Run) payroll.RunResponse {
	count := 0
	if slips, err := s.payslipRepo.ListByRun(ctx, run.ID); err == nil {
		count = len(slips)
	}
	return payroll.RunResponse{
		ID:           run.ID,
		Name:         run.Name,
		DateStart:    run.DateStart.Format("2006-01-02"),
		DateEnd:      run.DateEnd.Format("2006-01-02"),
		State:        string(run.State),
		PayslipCount: count,
	}
}

// CreateRun implements payroll.Service.
func (s *PayrollServiceImpl) CreateRun(ctx context.Context, companyID string, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}
	dateStart, _ := validator.IsValidDate(req.DateStart)
	dateEnd, _ := validator.IsValidDate(req.DateEnd)
	if dateStart.After(dateEnd) {
		return payroll.RunResponse{}, payroll.ErrInvalidPeriod
	}

	name := req.Name
	if name == "" {
		name = "Payroll " + dateStart.Format("January 2006")
	}

	run := payroll.Run{
		Name:      name,
		CompanyID: companyID,
		DateStart: dateStart,
		DateEnd:   dateEnd,
		State:     payroll.RunStateDraft,
	}
	created, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("create run: %w", err)
	}
	return s.toRunResponse(ctx, created), nil
}

// GetRun implements payroll.Service.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string, companyID string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return s.toRunResponse(ctx, run), nil
}

// ListRuns implements payroll.Service.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context, companyID string) ([]payroll.RunResponse, error) {
	runs, err := s.runRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	out := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, s.toRunResponse(ctx, run))
	}
	return out, nil
}

// GeneratePayslips implements payroll.Service. Contracts must be running,
// carry a salary structure and overlap the run period. Employees that already
// have a payslip in the run are skipped, so re-running never duplicates.
// A cancelled run may be generated again, which moves it back to generated.
func (s *PayrollServiceImpl) GeneratePayslips(ctx context.Context, runID string, companyID string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.State != payroll.RunStateDraft && run.State != payroll.RunStateGenerated && run.State != payroll.RunStateCancelled {
		return payroll.RunResponse{}, payroll.ErrRunInvalidState
	}

	contracts, err := s.contractRepo.ListEligible(ctx, companyID, run.DateStart, run.DateEnd)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("list eligible contracts: %w", err)
	}
	if len(contracts) == 0 {
		return payroll.RunResponse{}, payroll.ErrNoEligibleContracts
	}

	existing, err := s.payslipRepo.ListByRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("list run payslips: %w", err)
	}
	covered := make(map[string]struct{}, len(existing))
	for _, slip := range existing {
		covered[slip.EmployeeID] = struct{}{}
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		for _, c := range contracts {
			if _, ok := covered[c.EmployeeID]; ok {
				continue
			}
			slip, err := s.buildPayslip(txCtx, companyID, c.EmployeeID, run.DateStart, run.DateEnd, &run.ID)
			if err != nil {
				return fmt.Errorf("build payslip for employee %s: %w", c.EmployeeID, err)
			}
			if _, err := s.payslipRepo.Create(txCtx, slip); err != nil {
				return fmt.Errorf("create payslip for employee %s: %w", c.EmployeeID, err)
			}
		}
		return s.runRepo.UpdateState(txCtx, runID, payroll.RunStateGenerated)
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run.State = payroll.RunStateGenerated
	return s.toRunResponse(ctx, run), nil
}

// runPayslips loads the run's slips after checking the run state, erroring on
// an empty batch.
func (s *PayrollServiceImpl) runPayslips(ctx context.Context, runID string, companyID string, allowed ...payroll.RunState) (payroll.Run, []payroll.Payslip, error) {
	run, err := s.runRepo.GetByID(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, nil, err
	}

	ok := false
	for _, state := range allowed {
		if run.State == state {
			ok = true
			break
		}
	}
	if !ok {
		return payroll.Run{}, nil, payroll.ErrRunInvalidState
	}

	slips, err := s.payslipRepo.ListByRun(ctx, runID)
	if err != nil {
		return payroll.Run{}, nil, fmt.Errorf("list run payslips: %w", err)
	}
	if len(slips) == 0 {
		return payroll.Run{}, nil, payroll.ErrRunHasNoPayslips
	}
	return run, slips, nil
}

// ComputeRun implements payroll.Service. The batch is all-or-nothing: one
// failing formula aborts the whole computation.
func (s *PayrollServiceImpl) ComputeRun(ctx context.Context, runID string, companyID string) error {
	_, slips, err := s.runPayslips(ctx, runID, companyID, payroll.RunStateGenerated, payroll.RunStateComputed)
	if err != nil {
		return err
	}

	for _, slip := range slips {
		if slip.State == payroll.PayslipStateCancelled {
			continue
		}
		if _, err := s.computePayslip(ctx, slip); err != nil {
			return err
		}
	}
	return s.runRepo.UpdateState(ctx, runID, payroll.RunStateComputed)
}

// ValidateRun implements payroll.Service.
func (s *PayrollServiceImpl) ValidateRun(ctx context.Context, runID string, companyID string) error {
	_, slips, err := s.runPayslips(ctx, runID, companyID, payroll.RunStateComputed)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		for _, slip := range slips {
			if slip.State != payroll.PayslipStateComputed {
				continue
			}
			if len(slip.Lines) == 0 {
				return payroll.ErrPayslipNotComputed
			}
			if err := s.payslipRepo.UpdateState(txCtx, slip.ID, payroll.PayslipStateConfirmed); err != nil {
				return fmt.Errorf("confirm payslip %s: %w", slip.ID, err)
			}
		}
		return s.runRepo.UpdateState(txCtx, runID, payroll.RunStateValidated)
	})
	return err
}

// DoneRun implements payroll.Service.
func (s *PayrollServiceImpl) DoneRun(ctx context.Context, runID string, companyID string) error {
	_, slips, err := s.runPayslips(ctx, runID, companyID, payroll.RunStateValidated)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		for _, slip := range slips {
			if slip.State != payroll.PayslipStateConfirmed {
				continue
			}
			if err := s.payslipRepo.UpdateState(txCtx, slip.ID, payroll.PayslipStateDone); err != nil {
				return fmt.Errorf("close payslip %s: %w", slip.ID, err)
			}
		}
		return s.runRepo.UpdateState(txCtx, runID, payroll.RunStateDone)
	})
	return err
}

// CancelRun implements payroll.Service. Done runs are immutable.
func (s *PayrollServiceImpl) CancelRun(ctx context.Context, runID string, companyID string) error {
	run, err := s.runRepo.GetByID(ctx, runID, companyID)
	if err != nil {
		return err
	}
	if run.State == payroll.RunStateDone {
		return payroll.ErrRunInvalidState
	}

	slips, err := s.payslipRepo.ListByRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("list run payslips: %w", err)
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		for _, slip := range slips {
			if slip.State == payroll.PayslipStateDone || slip.State == payroll.PayslipStateCancelled {
				continue
			}
			if err := s.payslipRepo.UpdateState(txCtx, slip.ID, payroll.PayslipStateCancelled); err != nil {
				return fmt.Errorf("cancel payslip %s: %w", slip.ID, err)
			}
		}
		return s.runRepo.UpdateState(txCtx, runID, payroll.RunStateCancelled)
	})
	return err
}

// ResetRun implements payroll.Service. Every non-done payslip loses its lines
// and returns to draft, and the run returns to generated so it can be
// computed again.
func (s *PayrollServiceImpl) ResetRun(ctx context.Context, runID string, companyID string) error {
	run, err := s.runRepo.GetByID(ctx, runID, companyID)
	if err != nil {
		return err
	}
	if run.State == payroll.RunStateDone {
		return payroll.ErrRunInvalidState
	}

	slips, err := s.payslipRepo.ListByRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("list run payslips: %w", err)
	}
	if len(slips) == 0 {
		return payroll.ErrRunHasNoPayslips
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		for _, slip := range slips {
			if slip.State == payroll.PayslipStateDone {
				continue
			}
			if err := s.payslipRepo.ClearLines(txCtx, slip.ID); err != nil {
				return fmt.Errorf("clear payslip %s: %w", slip.ID, err)
			}
			if err := s.payslipRepo.UpdateState(txCtx, slip.ID, payroll.PayslipStateDraft); err != nil {
				return fmt.Errorf("reset payslip %s: %w", slip.ID, err)
			}
		}
		return s.runRepo.UpdateState(txCtx, runID, payroll.RunStateGenerated)
	})
	return err
}
