package leave

import "time"

// Request states follow the approval workflow.
type State string

const (
	StateDraft   State = "draft"
	StateConfirm State = "confirm"
	StateApprove State = "approve"
	StateReject  State = "reject"
)

// TypeCodeHoliday marks the company-wide leave entries created alongside
// holiday calendar dates. Those requests carry no employee.
const TypeCodeHoliday = "HOLIDAY"

// Request is one leave request over an inclusive date range.
type Request struct {
	ID            string
	CompanyID     string
	EmployeeID    *string // nil for company-wide holiday leave
	LeaveTypeCode string
	StartDate     time.Time
	EndDate       time.Time
	State         State
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DaysCount is the inclusive day span of the request.
func (r Request) DaysCount() int {
	if r.EndDate.Before(r.StartDate) {
		return 0
	}
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// CoveredDates lists every calendar date of the request clipped to [from, to].
// Payroll unions these sets so overlapping requests never double count.
func (r Request) CoveredDates(from, to time.Time) []time.Time {
	start := r.StartDate
	if start.Before(from) {
		start = from
	}
	end := r.EndDate
	if end.After(to) {
		end = to
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
