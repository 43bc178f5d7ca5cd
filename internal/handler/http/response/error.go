package response

import (
	"errors"
	"net/http"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/auth"
	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/holiday"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A broken salary rule formula aborts the whole computation; surface
	// which rule failed so payroll staff can fix it.
	var ruleErr *payroll.RuleExecutionError
	if errors.As(err, &ruleErr) {
		UnprocessableEntity(w, "Salary rule failed to evaluate", map[string]string{
			"rule_code": ruleErr.RuleCode,
			"rule_name": ruleErr.RuleName,
			"error":     ruleErr.Err.Error(),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee code or PIN")
	case errors.Is(err, auth.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, auth.ErrPINNotSet):
		Forbidden(w, "Kiosk PIN has not been configured")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")

	// Employee and contract domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrNoRunningContract):
		BadRequest(w, "Employee has no running contract", nil)
	case errors.Is(err, contract.ErrMissingSalaryStructure):
		BadRequest(w, "Contract has no salary structure assigned", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrDuplicateAssignment):
		Conflict(w, "This shift is already assigned on that date")
	case errors.Is(err, shift.ErrInvalidWindow):
		BadRequest(w, "Shift end time must be after start time", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoShiftAssigned):
		BadRequest(w, "No shift assigned for this date", nil)
	case errors.Is(err, attendance.ErrOutsideShiftWindow):
		BadRequest(w, "Check-in time is outside every allowed shift window", nil)
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, "A punch already exists for this day")
	case errors.Is(err, attendance.ErrOpenPunchExists):
		Conflict(w, "An open punch without check-out already exists")
	case errors.Is(err, attendance.ErrContractNotRunning):
		BadRequest(w, "Employee has no running contract", nil)
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		BadRequest(w, "Employee is on approved leave for this date", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open punch to check out", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out must not be before check-in", nil)
	case errors.Is(err, attendance.ErrPunchNotFound):
		NotFound(w, "Attendance punch not found")
	case errors.Is(err, attendance.ErrInvalidTransition):
		Conflict(w, "Punch state does not allow this action")

	// Holiday and leave domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDuplicateDate):
		Conflict(w, "A holiday already exists on that date")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Leave end date must not be before start date", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrRuleNotFound):
		NotFound(w, "Salary rule not found")
	case errors.Is(err, payroll.ErrRuleCodeExists):
		Conflict(w, "Rule code already exists in this structure")
	case errors.Is(err, payroll.ErrMissingSalaryStructure):
		BadRequest(w, "No salary structure assigned to the contract", nil)
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipNotComputed):
		BadRequest(w, "Payslip has no computed lines; compute it before confirming", nil)
	case errors.Is(err, payroll.ErrPayslipDone):
		Conflict(w, "Payslip is done and can no longer change")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Period start date must not be after end date", nil)
	case errors.Is(err, payroll.ErrInvalidState):
		Conflict(w, "Payslip state does not allow this action")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payslip run not found")
	case errors.Is(err, payroll.ErrNoEligibleContracts):
		BadRequest(w, "No eligible contracts found for this pay period", nil)
	case errors.Is(err, payroll.ErrRunHasNoPayslips):
		BadRequest(w, "Payslip run has no payslips", nil)
	case errors.Is(err, payroll.ErrRunInvalidState):
		Conflict(w, "Payslip run state does not allow this action")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
