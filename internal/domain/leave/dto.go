package leave

import (
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD
	EndDate       string  `json:"end_date"`   // YYYY-MM-DD
	Note          *string `json:"note,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeCode) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_code", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    *string `json:"employee_id,omitempty"`
	LeaveTypeCode string  `json:"leave_type_code"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysCount     int     `json:"days_count"`
	State         string  `json:"state"`
	Note          *string `json:"note,omitempty"`
}
