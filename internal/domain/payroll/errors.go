package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrStructureNotFound      = errors.New("salary structure not found")
	ErrRuleNotFound           = errors.New("salary rule not found")
	ErrRuleCodeExists         = errors.New("rule code already exists in this structure")
	ErrMissingSalaryStructure = errors.New("no salary structure assigned to the contract")

	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrPayslipNotComputed = errors.New("payslip has no computed lines; compute it before confirming")
	ErrPayslipDone        = errors.New("payslip is done and can no longer change")
	ErrInvalidPeriod      = errors.New("period start date must not be after end date")
	ErrInvalidState       = errors.New("payslip state does not allow this action")

	ErrRunNotFound         = errors.New("payslip run not found")
	ErrNoEligibleContracts = errors.New("no eligible contracts found for this pay period")
	ErrRunHasNoPayslips    = errors.New("payslip run has no payslips")
	ErrRunInvalidState     = errors.New("payslip run state does not allow this action")
)

// RuleExecutionError reports a salary rule formula that failed to compile or
// evaluate. The whole payslip computation is discarded when it occurs.
type RuleExecutionError struct {
	RuleCode string
	RuleName string
	Err      error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("salary rule %s (%s) failed: %v", e.RuleCode, e.RuleName, e.Err)
}

func (e *RuleExecutionError) Unwrap() error {
	return e.Err
}
