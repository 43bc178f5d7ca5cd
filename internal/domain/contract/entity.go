package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

type State string

const (
	StateDraft           State = "draft"
	StateWaitingApproval State = "waiting_approval"
	StateOpen            State = "open"
	StateExpired         State = "expired"
	StateCancelled       State = "cancelled"
)

// RunningStates are the contract states that allow attendance recording and
// make the contract eligible for payslip generation.
var RunningStates = []State{StateOpen, StateWaitingApproval}

// Contract binds an employee to a wage and, optionally, a salary structure.
type Contract struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	State             State
	DateStart         time.Time
	DateEnd           *time.Time
	Wage              decimal.Decimal
	PositionAllowance decimal.Decimal
	JobAllowance      decimal.Decimal
	SalaryStructureID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined display fields
	EmployeeName *string
}

// Running reports whether the contract currently permits attendance and payroll.
func (c Contract) Running() bool {
	for _, s := range RunningStates {
		if c.State == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether the contract's validity intersects [from, to].
// An open-ended contract (no DateEnd) overlaps any period it has started in.
func (c Contract) Overlaps(from, to time.Time) bool {
	if c.DateStart.After(to) {
		return false
	}
	if c.DateEnd != nil && c.DateEnd.Before(from) {
		return false
	}
	return true
}
