package shift

import (
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

type CreateTemplateRequest struct {
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Sequence  *int    `json:"sequence,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if r.StartTime < 0 || r.StartTime >= 24 {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be within 0-24"})
	}
	if r.EndTime < 0 || r.EndTime > 24 {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be within 0-24"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAssignmentRequest struct {
	ShiftID     string   `json:"shift_id"`
	Date        string   `json:"date"` // YYYY-MM-DD
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TemplateResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
	Label     string  `json:"label"`
	Active    bool    `json:"active"`
}

type AssignmentResponse struct {
	ID          string   `json:"id"`
	ShiftID     string   `json:"shift_id"`
	ShiftLabel  string   `json:"shift_label,omitempty"`
	Date        string   `json:"date"`
	EmployeeIDs []string `json:"employee_ids"`
}
