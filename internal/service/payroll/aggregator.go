package payroll

import (
	"context"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
)

// Aggregator assembles the rule context for one payslip: attendance totals,
// leave days, sales figures and the payslip's manual inputs.
type Aggregator struct {
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	salesRepo      payroll.SalesDataRepository
}

func NewAggregator(
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
	salesRepo payroll.SalesDataRepository,
) *Aggregator {
	return &Aggregator{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		salesRepo:      salesRepo,
	}
}

// BuildContext gathers everything the engine needs for the slip's period.
// Non-zero manual inputs on the payslip override the computed figures.
func (a *Aggregator) BuildContext(ctx context.Context, slip payroll.Payslip, c contract.Contract, emp employee.Employee) (RuleContext, error) {
	rctx := RuleContext{
		Wage:              c.Wage.InexactFloat64(),
		PositionAllowance: c.PositionAllowance.InexactFloat64(),
		JobAllowance:      c.JobAllowance.InexactFloat64(),
		StandardWorkDays:  emp.StandardWorkDays(slip.DateFrom),
		Advance:           slip.AdvanceAmount.InexactFloat64(),
		Penalty:           slip.PenaltyAmount.InexactFloat64(),
		Rating:            slip.Rating,
	}

	// Attendance summary covers [DateFrom, DateTo] inclusive.
	summary, err := a.attendanceRepo.SummarizePeriod(ctx, slip.EmployeeID, slip.DateFrom, slip.DateTo.AddDate(0, 0, 1))
	if err != nil {
		return RuleContext{}, fmt.Errorf("summarize attendance: %w", err)
	}
	rctx.WorkedDays = summary.WorkedDays
	rctx.TotalHours = summary.TotalHours
	rctx.OTNormalHours = summary.OvertimeNormalHours
	rctx.OTHolidayHours = summary.OvertimeHolidayHours

	leaveDays, err := a.leaveDaysInPeriod(ctx, slip)
	if err != nil {
		return RuleContext{}, err
	}
	rctx.LeaveDays = leaveDays

	salesAmount, productsSold, err := a.salesInPeriod(ctx, slip)
	if err != nil {
		return RuleContext{}, err
	}
	rctx.SalesAmount = salesAmount
	rctx.ProductsSold = productsSold

	// Manual overrides
	if slip.LeaveDays > 0 {
		rctx.LeaveDays = slip.LeaveDays
	}
	if slip.OTNormalHours > 0 {
		rctx.OTNormalHours = slip.OTNormalHours
	}
	if slip.OTHolidayHours > 0 {
		rctx.OTHolidayHours = slip.OTHolidayHours
	}

	return rctx, nil
}

// leaveDaysInPeriod counts the distinct calendar dates covered by the
// employee's approved leaves plus company-wide holiday leaves inside the
// period. Overlapping requests contribute each date once.
func (a *Aggregator) leaveDaysInPeriod(ctx context.Context, slip payroll.Payslip) (float64, error) {
	requests, err := a.leaveRepo.ListApprovedOverlapping(ctx, slip.EmployeeID, slip.DateFrom, slip.DateTo)
	if err != nil {
		return 0, fmt.Errorf("list approved leaves: %w", err)
	}
	holidayRequests, err := a.leaveRepo.ListHolidayOverlapping(ctx, slip.CompanyID, slip.DateFrom, slip.DateTo)
	if err != nil {
		return 0, fmt.Errorf("list holiday leaves: %w", err)
	}

	covered := make(map[string]struct{})
	for _, req := range append(requests, holidayRequests...) {
		for _, d := range req.CoveredDates(slip.DateFrom, slip.DateTo) {
			covered[d.Format("2006-01-02")] = struct{}{}
		}
	}
	return float64(len(covered)), nil
}

// salesInPeriod sums the employee's sales rows, from the run when the slip
// belongs to one and by date range otherwise.
func (a *Aggregator) salesInPeriod(ctx context.Context, slip payroll.Payslip) (float64, int, error) {
	var (
		rows []payroll.SalesData
		err  error
	)
	if slip.RunID != nil {
		rows, err = a.salesRepo.ListForRun(ctx, *slip.RunID, slip.EmployeeID)
	} else {
		rows, err = a.salesRepo.ListForPeriod(ctx, slip.EmployeeID, slip.DateFrom, slip.DateTo)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("list sales data: %w", err)
	}

	amount := 0.0
	products := 0
	for _, r := range rows {
		amount += r.Amount.InexactFloat64()
		products += r.ProductsSold
	}
	return amount, products, nil
}
