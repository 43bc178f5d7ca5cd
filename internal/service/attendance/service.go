package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/holiday"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"github.com/forher-hr/hr-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	assignmentRepo shift.AssignmentRepository
	employeeRepo   employee.Repository
	contractRepo   contract.Repository
	leaveRepo      leave.Repository
	holidayRepo    holiday.Repository
	policy         Policy
	now            func() time.Time

	// withTx runs fn inside a database transaction. Swapped for a
	// pass-through in tests.
	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	assignmentRepo shift.AssignmentRepository,
	employeeRepo employee.Repository,
	contractRepo contract.Repository,
	leaveRepo leave.Repository,
	holidayRepo holiday.Repository,
	policy Policy,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		contractRepo:   contractRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		policy:         policy,
		now:            time.Now,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// timeToStringPtr safely converts a *time.Time to an RFC3339 string.
func timeToStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func toPunchResponse(p attendance.Punch) attendance.PunchResponse {
	return attendance.PunchResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		Date:                 p.Date.Format("2006-01-02"),
		CheckIn:              p.CheckIn.UTC().Format(time.RFC3339),
		CheckOut:             timeToStringPtr(p.CheckOut),
		IsLate:               p.IsLate,
		IsEarly:              p.IsEarly,
		IsHoliday:            p.IsHoliday,
		WorkedHours:          p.WorkedHours,
		OvertimeNormalHours:  p.OvertimeNormalHours,
		OvertimeHolidayHours: p.OvertimeHolidayHours,
		State:                string(p.State),
	}
}

func (a *AttendanceServiceImpl) resolveLocation(emp employee.Employee) *time.Location {
	if emp.Timezone == nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(*emp.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// preconditions verifies the employee can punch at instant t: active record,
// running contract, not on approved leave. Returns the contract for linking.
func (a *AttendanceServiceImpl) preconditions(ctx context.Context, emp employee.Employee, date time.Time) (contract.Contract, error) {
	if !emp.Active {
		return contract.Contract{}, employee.ErrEmployeeInactive
	}

	c, err := a.contractRepo.GetRunningByEmployee(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, contract.ErrNoRunningContract) {
			return contract.Contract{}, attendance.ErrContractNotRunning
		}
		return contract.Contract{}, fmt.Errorf("get running contract: %w", err)
	}

	onLeave, err := a.leaveRepo.HasApprovedLeaveOn(ctx, emp.ID, date)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("check approved leave: %w", err)
	}
	if onLeave {
		return contract.Contract{}, attendance.ErrOnApprovedLeave
	}

	return c, nil
}

func (a *AttendanceServiceImpl) isHolidayDate(ctx context.Context, companyID string, date time.Time) (bool, error) {
	dates, err := a.holidayRepo.DatesBetween(ctx, companyID, date, date)
	if err != nil {
		return false, fmt.Errorf("check holiday calendar: %w", err)
	}
	return len(dates) > 0, nil
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, companyID string, req attendance.CheckInRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("get employee: %w", err)
	}
	if emp.CompanyID != companyID {
		return attendance.PunchResponse{}, employee.ErrEmployeeNotFound
	}

	loc := a.resolveLocation(emp)
	checkIn := req.CheckInTime(a.now())
	date := LocalDate(checkIn, loc)

	c, err := a.preconditions(ctx, emp, date)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	assignments, err := a.assignmentRepo.ListForEmployeeOnDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("list shift assignments: %w", err)
	}

	isHoliday, err := a.isHolidayDate(ctx, companyID, date)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	cls, err := Classify(checkIn, nil, assignments, loc, isHoliday, a.policy)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	var created attendance.Punch
	err = a.withTx(ctx, func(txCtx context.Context) error {
		open, err := a.attendanceRepo.GetOpenPunch(txCtx, emp.ID)
		if err != nil {
			return fmt.Errorf("get open punch: %w", err)
		}
		if open != nil {
			return attendance.ErrOpenPunchExists
		}

		dayFrom, dayTo := LocalDayBoundsUTC(checkIn, loc)
		count, err := a.attendanceRepo.CountPunchesBetween(txCtx, emp.ID, dayFrom, dayTo)
		if err != nil {
			return fmt.Errorf("count punches: %w", err)
		}
		if count >= a.policy.MaxPunchesPerDay {
			return attendance.ErrDuplicatePunch
		}

		punch := attendance.Punch{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			ContractID: &c.ID,
			ShiftID:    &cls.ShiftID,
			Date:       date,
			CheckIn:    checkIn,
			IsLate:     cls.IsLate,
			IsHoliday:  cls.IsHoliday,
			State:      attendance.StateDraft,
			Note:       req.Note,
		}
		created, err = a.attendanceRepo.Create(txCtx, punch)
		if err != nil {
			return fmt.Errorf("create punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return toPunchResponse(created), nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, companyID string, req attendance.CheckOutRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("get employee: %w", err)
	}
	if emp.CompanyID != companyID {
		return attendance.PunchResponse{}, employee.ErrEmployeeNotFound
	}

	loc := a.resolveLocation(emp)
	checkOut := req.CheckOutTime(a.now())

	var updated attendance.Punch
	err = a.withTx(ctx, func(txCtx context.Context) error {
		open, err := a.attendanceRepo.GetOpenPunch(txCtx, emp.ID)
		if err != nil {
			return fmt.Errorf("get open punch: %w", err)
		}
		if open == nil {
			return attendance.ErrNotCheckedIn
		}
		if checkOut.Before(open.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		punch := *open
		punch.CheckOut = &checkOut
		if req.Note != nil {
			punch.Note = req.Note
		}
		if err := a.reclassify(txCtx, &punch, loc); err != nil {
			return err
		}
		punch.State = attendance.StateToConfirm

		if err := a.attendanceRepo.Update(txCtx, punch); err != nil {
			return fmt.Errorf("update punch: %w", err)
		}
		updated = punch
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return toPunchResponse(updated), nil
}

// reclassify rebuilds the punch's derived fields from its stored times. The
// same inputs always produce the same outputs, so repeated recomputation is
// safe.
func (a *AttendanceServiceImpl) reclassify(ctx context.Context, punch *attendance.Punch, loc *time.Location) error {
	date := LocalDate(punch.CheckIn, loc)

	assignments, err := a.assignmentRepo.ListForEmployeeOnDate(ctx, punch.EmployeeID, date)
	if err != nil {
		return fmt.Errorf("list shift assignments: %w", err)
	}

	isHoliday, err := a.isHolidayDate(ctx, punch.CompanyID, date)
	if err != nil {
		return err
	}

	cls, err := Classify(punch.CheckIn, punch.CheckOut, assignments, loc, isHoliday, a.policy)
	if err != nil {
		return err
	}

	punch.Date = date
	punch.ShiftID = &cls.ShiftID
	punch.IsLate = cls.IsLate
	punch.IsEarly = cls.IsEarly
	punch.WorkedHours = cls.WorkedHours
	punch.OvertimeNormalHours = cls.OvertimeNormalHours
	punch.OvertimeHolidayHours = cls.OvertimeHolidayHours
	punch.IsHoliday = cls.IsHoliday
	return nil
}

// Get implements attendance.Service.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string, companyID string) (attendance.PunchResponse, error) {
	punch, err := a.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	return toPunchResponse(punch), nil
}

// List implements attendance.Service.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter, companyID string) (attendance.ListPunchResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	punches, total, err := a.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListPunchResponse{}, fmt.Errorf("list punches: %w", err)
	}

	resp := attendance.ListPunchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Punches:    make([]attendance.PunchResponse, 0, len(punches)),
	}
	for _, p := range punches {
		resp.Punches = append(resp.Punches, toPunchResponse(p))
	}
	return resp, nil
}

// UpdateTimes implements attendance.Service.
func (a *AttendanceServiceImpl) UpdateTimes(ctx context.Context, id string, companyID string, req attendance.UpdateTimesRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	punch, err := a.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if punch.State == attendance.StateValidated {
		return attendance.PunchResponse{}, attendance.ErrInvalidTransition
	}

	emp, err := a.employeeRepo.GetByID(ctx, punch.EmployeeID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("get employee: %w", err)
	}
	loc := a.resolveLocation(emp)

	checkIn, _ := validator.IsValidDateTime(req.CheckIn)
	punch.CheckIn = checkIn.UTC()
	punch.CheckOut = nil
	if req.CheckOut != nil && *req.CheckOut != "" {
		out, _ := validator.IsValidDateTime(*req.CheckOut)
		outUTC := out.UTC()
		if outUTC.Before(punch.CheckIn) {
			return attendance.PunchResponse{}, attendance.ErrCheckOutBeforeCheckIn
		}
		punch.CheckOut = &outUTC
	}
	if req.Note != nil {
		punch.Note = req.Note
	}

	err = a.withTx(ctx, func(txCtx context.Context) error {
		if err := a.reclassify(txCtx, &punch, loc); err != nil {
			return err
		}
		if err := a.attendanceRepo.Update(txCtx, punch); err != nil {
			return fmt.Errorf("update punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return toPunchResponse(punch), nil
}

// transition moves a punch between review states, enforcing the workflow.
func (a *AttendanceServiceImpl) transition(ctx context.Context, id string, companyID string, allowed []attendance.State, next attendance.State) error {
	punch, err := a.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	ok := false
	for _, s := range allowed {
		if punch.State == s {
			ok = true
			break
		}
	}
	if !ok {
		return attendance.ErrInvalidTransition
	}

	punch.State = next
	if err := a.attendanceRepo.Update(ctx, punch); err != nil {
		return fmt.Errorf("update punch state: %w", err)
	}
	return nil
}

// Submit implements attendance.Service.
func (a *AttendanceServiceImpl) Submit(ctx context.Context, id string, companyID string) error {
	return a.transition(ctx, id, companyID, []attendance.State{attendance.StateDraft}, attendance.StateToConfirm)
}

// Confirm implements attendance.Service.
func (a *AttendanceServiceImpl) Confirm(ctx context.Context, id string, companyID string) error {
	return a.transition(ctx, id, companyID, []attendance.State{attendance.StateToConfirm}, attendance.StateConfirmed)
}

// Validate implements attendance.Service.
func (a *AttendanceServiceImpl) Validate(ctx context.Context, id string, companyID string) error {
	return a.transition(ctx, id, companyID, []attendance.State{attendance.StateConfirmed}, attendance.StateValidated)
}

// Reject implements attendance.Service.
func (a *AttendanceServiceImpl) Reject(ctx context.Context, id string, companyID string) error {
	return a.transition(ctx, id, companyID, []attendance.State{attendance.StateToConfirm, attendance.StateConfirmed}, attendance.StateRejected)
}

// ResetToDraft implements attendance.Service.
func (a *AttendanceServiceImpl) ResetToDraft(ctx context.Context, id string, companyID string) error {
	return a.transition(ctx, id, companyID, []attendance.State{attendance.StateToConfirm, attendance.StateConfirmed, attendance.StateRejected}, attendance.StateDraft)
}

// Delete implements attendance.Service.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string, companyID string) error {
	punch, err := a.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if punch.State == attendance.StateValidated {
		return attendance.ErrInvalidTransition
	}
	return a.attendanceRepo.Delete(ctx, id, companyID)
}
