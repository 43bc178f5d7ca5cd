package payroll

import (
	"strconv"

	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== STRUCTURE & RULE DTOs ==========

type CreateStructureRequest struct {
	Name string  `json:"name"`
	Note *string `json:"note,omitempty"`
}

func (r *CreateStructureRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRuleRequest struct {
	StructureID   string  `json:"structure_id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Sequence      int     `json:"sequence"`
	RuleType      string  `json:"rule_type"`
	Formula       string  `json:"formula"`
	AlwaysInclude bool    `json:"always_include"`
	Description   *string `json:"description,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StructureID) {
		errs = append(errs, validator.ValidationError{Field: "structure_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Formula) {
		errs = append(errs, validator.ValidationError{Field: "formula", Message: "is required"})
	}
	if !validator.IsInSlice(r.RuleType, RuleTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "rule_type", Message: "must be one of basic, allowance, deduction, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PAYSLIP DTOs ==========

type CreatePayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayslipInputsRequest struct {
	ID             string           `json:"id"`
	LeaveDays      *float64         `json:"leave_days,omitempty"`
	OTNormalHours  *float64         `json:"ot_normal_hours,omitempty"`
	OTHolidayHours *float64         `json:"ot_holiday_hours,omitempty"`
	Rating         *string          `json:"rating,omitempty"`
	AdvanceAmount  *decimal.Decimal `json:"advance_amount,omitempty"`
	PenaltyAmount  *decimal.Decimal `json:"penalty_amount,omitempty"`
}

func (r *UpdatePayslipInputsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Rating != nil && !validator.IsInSlice(*r.Rating, []string{"A", "B", "C"}) {
		errs = append(errs, validator.ValidationError{Field: "rating", Message: "must be A, B or C"})
	}
	if r.LeaveDays != nil && *r.LeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID *string
	RunID      *string
	State      *string
	Page       int
	Limit      int
}

type PayslipLineResponse struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	RuleType string          `json:"rule_type"`
	Sequence int             `json:"sequence"`
	Quantity float64         `json:"quantity"`
	Rate     float64         `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

type PayslipResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	EmployeeID     string                `json:"employee_id"`
	EmployeeName   *string               `json:"employee_name,omitempty"`
	ContractID     string                `json:"contract_id"`
	StructureID    string                `json:"structure_id"`
	RunID          *string               `json:"run_id,omitempty"`
	DateFrom       string                `json:"date_from"`
	DateTo         string                `json:"date_to"`
	State          string                `json:"state"`
	TotalGross     decimal.Decimal       `json:"total_gross"`
	TotalDeduction decimal.Decimal       `json:"total_deduction"`
	TotalNet       decimal.Decimal       `json:"total_net"`
	Lines          []PayslipLineResponse `json:"lines"`
}

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Name      string `json:"name"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.DateStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.DateEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DateStart    string `json:"date_start"`
	DateEnd      string `json:"date_end"`
	State        string `json:"state"`
	PayslipCount int    `json:"payslip_count"`
}

// ========== SALES DATA DTOs ==========

type ImportSalesRow struct {
	EmployeeCode string          `json:"employee_code"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	ProductsSold int             `json:"products_sold"`
	Reference    *string         `json:"reference,omitempty"`
}

type ImportSalesRequest struct {
	RunID string           `json:"run_id"`
	Rows  []ImportSalesRow `json:"rows"`
}

func (r *ImportSalesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RunID) {
		errs = append(errs, validator.ValidationError{Field: "run_id", Message: "is required"})
	}
	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{Field: "rows", Message: "at least one row is required"})
	}
	for i, row := range r.Rows {
		if validator.IsEmpty(row.EmployeeCode) {
			errs = append(errs, validator.ValidationError{Field: "rows", Message: "row " + strconv.Itoa(i) + ": employee_code is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
