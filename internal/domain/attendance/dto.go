package attendance

import (
	"time"

	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Note       *string `json:"note,omitempty"`
	// At is optional; when empty the server clock is used. Accepted for
	// manager backfill, ISO8601 with timezone.
	At *string `json:"at,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.At != nil && *r.At != "" {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{Field: "at", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckInTime resolves the requested punch instant, defaulting to now.
func (r *CheckInRequest) CheckInTime(now time.Time) time.Time {
	if r.At != nil && *r.At != "" {
		if t, ok := validator.IsValidDateTime(*r.At); ok {
			return t.UTC()
		}
	}
	return now.UTC()
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Note       *string `json:"note,omitempty"`
	At         *string `json:"at,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.At != nil && *r.At != "" {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{Field: "at", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CheckOutRequest) CheckOutTime(now time.Time) time.Time {
	if r.At != nil && *r.At != "" {
		if t, ok := validator.IsValidDateTime(*r.At); ok {
			return t.UTC()
		}
	}
	return now.UTC()
}

type UpdateTimesRequest struct {
	CheckIn  string  `json:"check_in"`
	CheckOut *string `json:"check_out,omitempty"`
	Note     *string `json:"note,omitempty"`
}

func (r *UpdateTimesRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be an ISO8601 timestamp"})
	}
	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	State      *string
	Page       int
	Limit      int
}

type PunchResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         *string `json:"employee_name,omitempty"`
	Date                 string  `json:"date"`
	CheckIn              string  `json:"check_in"`
	CheckOut             *string `json:"check_out,omitempty"`
	IsLate               bool    `json:"is_late"`
	IsEarly              bool    `json:"is_early"`
	IsHoliday            bool    `json:"is_holiday"`
	WorkedHours          float64 `json:"worked_hours"`
	OvertimeNormalHours  float64 `json:"overtime_normal_hours"`
	OvertimeHolidayHours float64 `json:"overtime_holiday_hours"`
	State                string  `json:"state"`
}

type ListPunchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Punches    []PunchResponse `json:"punches"`
}
