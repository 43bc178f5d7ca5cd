package attendance

import (
	"time"
)

// State follows the review workflow a punch moves through after recording.
type State string

const (
	StateDraft     State = "draft"
	StateToConfirm State = "to_confirm"
	StateConfirmed State = "confirmed"
	StateValidated State = "validated"
	StateRejected  State = "rejected"
)

// Punch is one check-in/check-out pair for an employee. CheckIn and CheckOut
// are stored in UTC; Date is the check-in's calendar date in the employee's
// local timezone and drives shift matching and payroll summaries.
type Punch struct {
	ID         string
	EmployeeID string
	CompanyID  string
	ContractID *string
	ShiftID    *string
	Date       time.Time // local calendar date, midnight UTC
	CheckIn    time.Time
	CheckOut   *time.Time

	// Derived by the classifier on every write to CheckIn/CheckOut/EmployeeID.
	IsLate               bool
	IsEarly              bool
	WorkedHours          float64
	OvertimeNormalHours  float64
	OvertimeHolidayHours float64
	IsHoliday            bool

	State     State
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	EmployeeName *string
}

// Open reports whether the punch is still waiting for a check-out.
func (p Punch) Open() bool {
	return p.CheckOut == nil
}

// OvertimeTotalHours is the sum of the mutually exclusive overtime buckets.
func (p Punch) OvertimeTotalHours() float64 {
	return p.OvertimeNormalHours + p.OvertimeHolidayHours
}

// Summary aggregates punches for one employee over a period.
type Summary struct {
	EmployeeID           string
	TotalHours           float64
	WorkedDays           int
	OvertimeNormalHours  float64
	OvertimeHolidayHours float64
}
