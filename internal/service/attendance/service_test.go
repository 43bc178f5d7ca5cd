package attendance

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/holiday"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKE REPOSITORIES =====

type fakeAttendanceRepo struct {
	punches map[string]attendance.Punch
	seq     int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{punches: make(map[string]attendance.Punch)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, punch attendance.Punch) (attendance.Punch, error) {
	f.seq++
	punch.ID = "punch-" + strconv.Itoa(f.seq)
	f.punches[punch.ID] = punch
	return punch, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, punch attendance.Punch) error {
	if _, ok := f.punches[punch.ID]; !ok {
		return attendance.ErrPunchNotFound
	}
	f.punches[punch.ID] = punch
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Punch, error) {
	p, ok := f.punches[id]
	if !ok || p.CompanyID != companyID {
		return attendance.Punch{}, attendance.ErrPunchNotFound
	}
	return p, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string, companyID string) error {
	p, ok := f.punches[id]
	if !ok || p.CompanyID != companyID {
		return attendance.ErrPunchNotFound
	}
	delete(f.punches, id)
	return nil
}

func (f *fakeAttendanceRepo) GetOpenPunch(_ context.Context, employeeID string) (*attendance.Punch, error) {
	for _, p := range f.punches {
		if p.EmployeeID == employeeID && p.CheckOut == nil {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) CountPunchesBetween(_ context.Context, employeeID string, fromUTC, toUTC time.Time) (int, error) {
	count := 0
	for _, p := range f.punches {
		if p.EmployeeID == employeeID && !p.CheckIn.Before(fromUTC) && p.CheckIn.Before(toUTC) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) ListForPeriod(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range f.punches {
		if p.EmployeeID == employeeID && !p.CheckIn.Before(from) && p.CheckIn.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter, companyID string) ([]attendance.Punch, int64, error) {
	var out []attendance.Punch
	for _, p := range f.punches {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) SummarizePeriod(_ context.Context, employeeID string, from, to time.Time) (attendance.Summary, error) {
	summary := attendance.Summary{EmployeeID: employeeID}
	for _, p := range f.punches {
		if p.EmployeeID != employeeID || p.CheckIn.Before(from) || !p.CheckIn.Before(to) {
			continue
		}
		if p.State != attendance.StateConfirmed && p.State != attendance.StateValidated {
			continue
		}
		summary.TotalHours += p.WorkedHours
		summary.WorkedDays++
		summary.OvertimeNormalHours += p.OvertimeNormalHours
		summary.OvertimeHolidayHours += p.OvertimeHolidayHours
	}
	return summary, nil
}

type fakeAssignmentRepo struct {
	assignments []shift.Assignment
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a shift.Assignment) (shift.Assignment, error) {
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id string, _ string) (shift.Assignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return shift.Assignment{}, shift.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) ListForEmployeeOnDate(_ context.Context, employeeID string, date time.Time) ([]shift.Assignment, error) {
	var out []shift.Assignment
	for _, a := range f.assignments {
		if !a.Date.Equal(date) {
			continue
		}
		for _, id := range a.EmployeeIDs {
			if id == employeeID {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListForDateRange(_ context.Context, _ string, _, _ time.Time) ([]shift.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Code == code && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

type fakeContractRepo struct {
	contracts map[string]contract.Contract // keyed by employee id
}

func (f *fakeContractRepo) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	f.contracts[c.EmployeeID] = c
	return c, nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id string, _ string) (contract.Contract, error) {
	for _, c := range f.contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return contract.Contract{}, contract.ErrContractNotFound
}

func (f *fakeContractRepo) Update(_ context.Context, c contract.Contract) error {
	f.contracts[c.EmployeeID] = c
	return nil
}

func (f *fakeContractRepo) GetRunningByEmployee(_ context.Context, employeeID string) (contract.Contract, error) {
	c, ok := f.contracts[employeeID]
	if !ok || !c.Running() {
		return contract.Contract{}, contract.ErrNoRunningContract
	}
	return c, nil
}

func (f *fakeContractRepo) ListEligible(_ context.Context, companyID string, from, to time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range f.contracts {
		if c.CompanyID == companyID && c.Running() && c.SalaryStructureID != nil && c.Overlaps(from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	onLeave map[string]bool // employeeID|date
}

func leaveKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string, _ string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) Update(_ context.Context, _ leave.Request) error {
	return nil
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, _ string, _, _ time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListHolidayOverlapping(_ context.Context, _ string, _, _ time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) HasApprovedLeaveOn(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return f.onLeave[leaveKey(employeeID, date)], nil
}

type fakeHolidayRepo struct {
	dates map[string]bool
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (f *fakeHolidayRepo) List(_ context.Context, _ string) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

func (f *fakeHolidayRepo) DatesBetween(_ context.Context, _ string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if f.dates[d.Format("2006-01-02")] {
			out = append(out, d)
		}
	}
	return out, nil
}

// ===== TEST SETUP =====

const (
	testCompanyID  = "company-1"
	testEmployeeID = "emp-1"
)

type serviceFixture struct {
	svc         *AttendanceServiceImpl
	attendance  *fakeAttendanceRepo
	assignments *fakeAssignmentRepo
	employees   *fakeEmployeeRepo
	contracts   *fakeContractRepo
	leaves      *fakeLeaveRepo
	holidays    *fakeHolidayRepo
}

func utcTime(hour, min int) time.Time {
	return time.Date(2024, 3, 11, hour, min, 0, 0, time.UTC)
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		attendance:  newFakeAttendanceRepo(),
		assignments: &fakeAssignmentRepo{},
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			testEmployeeID: {
				ID:        testEmployeeID,
				CompanyID: testCompanyID,
				Code:      "2024-0001",
				FullName:  "Ayu Lestari",
				WorkMode:  employee.WorkModeFulltime,
				Active:    true,
			},
		}},
		contracts: &fakeContractRepo{contracts: map[string]contract.Contract{
			testEmployeeID: {
				ID:         "contract-1",
				EmployeeID: testEmployeeID,
				CompanyID:  testCompanyID,
				State:      contract.StateOpen,
				DateStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		}},
		leaves:   &fakeLeaveRepo{onLeave: make(map[string]bool)},
		holidays: &fakeHolidayRepo{dates: make(map[string]bool)},
	}

	f.svc = &AttendanceServiceImpl{
		attendanceRepo: f.attendance,
		assignmentRepo: f.assignments,
		employeeRepo:   f.employees,
		contractRepo:   f.contracts,
		leaveRepo:      f.leaves,
		holidayRepo:    f.holidays,
		policy:         DefaultPolicy(),
		now:            func() time.Time { return utcTime(8, 0) },
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	f.assignments.assignments = []shift.Assignment{{
		ID:          "asg-1",
		ShiftID:     "shift-morning",
		CompanyID:   testCompanyID,
		Date:        testDate(),
		EmployeeIDs: []string{testEmployeeID},
		Shift:       func() *shift.Template { t := morningShift(); return &t }(),
	}}

	return f
}

func strPtr(s string) *string { return &s }

// ===== CHECK-IN TESTS =====

func TestCheckIn_Success(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	resp, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StateDraft), resp.State)
	assert.Equal(t, "2024-03-11", resp.Date)
	assert.False(t, resp.IsLate)

	stored := f.attendance.punches[resp.ID]
	require.NotNil(t, stored.ShiftID)
	assert.Equal(t, "shift-morning", *stored.ShiftID)
	require.NotNil(t, stored.ContractID)
	assert.Equal(t, "contract-1", *stored.ContractID)
}

func TestCheckIn_LateFlag(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.svc.now = func() time.Time { return utcTime(9, 15) }

	resp, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
}

func TestCheckIn_NoRunningContract(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	c := f.contracts.contracts[testEmployeeID]
	c.State = contract.StateExpired
	f.contracts.contracts[testEmployeeID] = c

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrContractNotRunning)
}

func TestCheckIn_OnApprovedLeave(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.leaves.onLeave[leaveKey(testEmployeeID, testDate())] = true

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrOnApprovedLeave)
}

func TestCheckIn_NoShiftAssigned(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.assignments.assignments = nil

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrNoShiftAssigned)
}

func TestCheckIn_OutsideShiftWindow(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.svc.now = func() time.Time { return utcTime(6, 0) }

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrOutsideShiftWindow)
}

func TestCheckIn_OpenPunchExists(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrOpenPunchExists)
}

func TestCheckIn_DuplicatePunchSameDay(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T17:00:00Z"),
	})
	require.NoError(t, err)

	// Second punch the same local day is refused even though no punch is open.
	_, err = f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T10:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicatePunch)
}

func TestCheckIn_ConfiguredPunchLimitAllowsSecondPunch(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.svc.policy.MaxPunchesPerDay = 2
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	_, err = f.svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T12:00:00Z"),
	})
	require.NoError(t, err)

	// A split shift's second punch fits under the raised limit.
	second, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T13:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", second.Date)

	_, err = f.svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T15:00:00Z"),
	})
	require.NoError(t, err)

	// The third punch crosses the limit.
	_, err = f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T16:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicatePunch)
}

// ===== CHECK-OUT TESTS =====

func TestCheckOut_Success(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	resp, err := f.svc.CheckOut(context.Background(), testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T19:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StateToConfirm), resp.State)
	assert.InDelta(t, 8.5, resp.WorkedHours, 1e-9)
	assert.InDelta(t, 2.0, resp.OvertimeNormalHours, 1e-9)
	assert.False(t, resp.IsEarly)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	_, err := f.svc.CheckOut(context.Background(), testCompanyID, attendance.CheckOutRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T07:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestCheckOut_HolidayOvertimeBucket(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	f.holidays.dates["2024-03-11"] = true

	_, err := f.svc.CheckIn(context.Background(), testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	resp, err := f.svc.CheckOut(context.Background(), testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T19:00:00Z"),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsHoliday)
	assert.Zero(t, resp.OvertimeNormalHours)
	assert.InDelta(t, 2.0, resp.OvertimeHolidayHours, 1e-9)
}

// ===== WORKFLOW TESTS =====

func TestWorkflow_HappyPath(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	// CheckOut moves the punch to to_confirm.
	_, err = f.svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         strPtr("2024-03-11T17:00:00Z"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Confirm(ctx, resp.ID, testCompanyID))
	assert.Equal(t, attendance.StateConfirmed, f.attendance.punches[resp.ID].State)

	require.NoError(t, f.svc.Validate(ctx, resp.ID, testCompanyID))
	assert.Equal(t, attendance.StateValidated, f.attendance.punches[resp.ID].State)
}

func TestWorkflow_InvalidTransition(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	// Draft cannot be validated directly.
	err = f.svc.Validate(ctx, resp.ID, testCompanyID)
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestWorkflow_RejectThenReset(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Submit(ctx, resp.ID, testCompanyID))
	require.NoError(t, f.svc.Reject(ctx, resp.ID, testCompanyID))
	assert.Equal(t, attendance.StateRejected, f.attendance.punches[resp.ID].State)

	require.NoError(t, f.svc.ResetToDraft(ctx, resp.ID, testCompanyID))
	assert.Equal(t, attendance.StateDraft, f.attendance.punches[resp.ID].State)
}

// ===== UPDATE TESTS =====

func TestUpdateTimes_Reclassifies(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTimes(ctx, resp.ID, testCompanyID, attendance.UpdateTimesRequest{
		CheckIn:  "2024-03-11T09:00:00Z",
		CheckOut: strPtr("2024-03-11T18:00:00Z"),
	})
	require.NoError(t, err)

	assert.True(t, updated.IsLate)
	assert.InDelta(t, 8.0, updated.WorkedHours, 1e-9)
	assert.InDelta(t, 1.0, updated.OvertimeNormalHours, 1e-9)
}

func TestUpdateTimes_IdempotentRecompute(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	req := attendance.UpdateTimesRequest{
		CheckIn:  "2024-03-11T08:30:00Z",
		CheckOut: strPtr("2024-03-11T17:00:00Z"),
	}
	first, err := f.svc.UpdateTimes(ctx, resp.ID, testCompanyID, req)
	require.NoError(t, err)
	second, err := f.svc.UpdateTimes(ctx, resp.ID, testCompanyID, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpdateTimes_ValidatedPunchLocked(t *testing.T) {
	t.Parallel()
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	punch := f.attendance.punches[resp.ID]
	punch.State = attendance.StateValidated
	f.attendance.punches[resp.ID] = punch

	_, err = f.svc.UpdateTimes(ctx, resp.ID, testCompanyID, attendance.UpdateTimesRequest{
		CheckIn: "2024-03-11T09:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}
