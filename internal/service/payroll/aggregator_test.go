package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchSlip() payroll.Payslip {
	return payroll.Payslip{
		ID:         "slip-1",
		EmployeeID: testEmployeeID,
		ContractID: "contract-1",
		CompanyID:  testCompanyID,
		DateFrom:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DateTo:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func leaveRange(start, end time.Time) leave.Request {
	empID := testEmployeeID
	return leave.Request{
		EmployeeID:    &empID,
		LeaveTypeCode: "ANNUAL",
		StartDate:     start,
		EndDate:       end,
		State:         leave.StateApprove,
	}
}

func (f *payrollFixture) buildMarchContext(t *testing.T, slip payroll.Payslip) RuleContext {
	t.Helper()
	c := f.contracts.contracts["contract-1"]
	emp := f.employees.employees[testEmployeeID]
	rctx, err := f.svc.aggregator.BuildContext(context.Background(), slip, c, emp)
	require.NoError(t, err)
	return rctx
}

func TestBuildContext_ContractAndAttendanceFigures(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()

	rctx := f.buildMarchContext(t, marchSlip())

	assert.Equal(t, 5200000.0, rctx.Wage)
	assert.Equal(t, 24, rctx.WorkedDays)
	assert.Equal(t, 192.0, rctx.TotalHours)
	assert.Equal(t, 2.0, rctx.OTNormalHours)
	// March has 31 days, minus four rest days for fulltime staff.
	assert.Equal(t, 27, rctx.StandardWorkDays)
}

func TestBuildContext_OverlappingLeavesCountDatesOnce(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()
	f.leaves.approved[testEmployeeID] = []leave.Request{
		leaveRange(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		leaveRange(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)),
	}
	f.leaves.holidays = []leave.Request{{
		LeaveTypeCode: leave.TypeCodeHoliday,
		StartDate:     time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		State:         leave.StateApprove,
	}}

	rctx := f.buildMarchContext(t, marchSlip())

	// 4th, 5th, 6th and 25th; the shared 5th counts once.
	assert.Equal(t, 4.0, rctx.LeaveDays)
}

func TestBuildContext_LeaveClippedToPeriod(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()
	f.leaves.approved[testEmployeeID] = []leave.Request{
		leaveRange(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
	}

	rctx := f.buildMarchContext(t, marchSlip())

	assert.Equal(t, 2.0, rctx.LeaveDays)
}

func TestBuildContext_ManualInputsOverrideComputed(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()
	f.leaves.approved[testEmployeeID] = []leave.Request{
		leaveRange(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)),
	}

	slip := marchSlip()
	slip.LeaveDays = 2
	slip.OTNormalHours = 10
	slip.Rating = "A"
	slip.AdvanceAmount = decimal.NewFromInt(500000)

	rctx := f.buildMarchContext(t, slip)

	assert.Equal(t, 2.0, rctx.LeaveDays)
	assert.Equal(t, 10.0, rctx.OTNormalHours)
	assert.Equal(t, "A", rctx.Rating)
	assert.Equal(t, 500000.0, rctx.Advance)
	// Holiday overtime had no override and keeps the computed figure.
	assert.Equal(t, 0.0, rctx.OTHolidayHours)
}

func TestBuildContext_SalesByRunWhenSlipBelongsToOne(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()
	runID := "run-1"
	f.sales.rows = []payroll.SalesData{
		{RunID: &runID, EmployeeID: testEmployeeID, Amount: decimal.NewFromInt(800000), ProductsSold: 5},
		{RunID: &runID, EmployeeID: testEmployeeID, Amount: decimal.NewFromInt(400000), ProductsSold: 3},
		{EmployeeID: testEmployeeID, Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(999999), ProductsSold: 9},
	}

	slip := marchSlip()
	slip.RunID = &runID
	rctx := f.buildMarchContext(t, slip)

	assert.Equal(t, 1200000.0, rctx.SalesAmount)
	assert.Equal(t, 8, rctx.ProductsSold)
}

func TestBuildContext_SalesByDateRangeForStandaloneSlip(t *testing.T) {
	t.Parallel()
	f := newPayrollFixture()
	f.sales.rows = []payroll.SalesData{
		{EmployeeID: testEmployeeID, Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300000), ProductsSold: 2},
		{EmployeeID: testEmployeeID, Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(700000), ProductsSold: 4},
	}

	rctx := f.buildMarchContext(t, marchSlip())

	assert.Equal(t, 300000.0, rctx.SalesAmount)
	assert.Equal(t, 2, rctx.ProductsSold)
}
