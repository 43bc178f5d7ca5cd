package leave

import (
	"context"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.Repository
	employeeRepo employee.Repository
}

func NewLeaveService(leaveRepo leave.Repository, employeeRepo employee.Repository) leave.Service {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

func toLeaveResponse(req leave.Request) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		LeaveTypeCode: req.LeaveTypeCode,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		DaysCount:     req.DaysCount(),
		State:         string(req.State),
		Note:          req.Note,
	}
}

// Create implements leave.Service.
func (s *LeaveServiceImpl) Create(ctx context.Context, companyID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if endDate.Before(startDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("get employee: %w", err)
	}
	if emp.CompanyID != companyID {
		return leave.LeaveResponse{}, employee.ErrEmployeeNotFound
	}

	created, err := s.leaveRepo.Create(ctx, leave.Request{
		CompanyID:     companyID,
		EmployeeID:    &emp.ID,
		LeaveTypeCode: req.LeaveTypeCode,
		StartDate:     startDate,
		EndDate:       endDate,
		State:         leave.StateConfirm,
		Note:          req.Note,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("create leave request: %w", err)
	}
	return toLeaveResponse(created), nil
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string, companyID string) (leave.LeaveResponse, error) {
	req, err := s.leaveRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toLeaveResponse(req), nil
}

func (s *LeaveServiceImpl) settle(ctx context.Context, id string, companyID string, state leave.State) error {
	req, err := s.leaveRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.State == leave.StateApprove || req.State == leave.StateReject {
		return leave.ErrAlreadyProcessed
	}

	req.State = state
	return s.leaveRepo.Update(ctx, req)
}

// Approve implements leave.Service.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string, companyID string) error {
	return s.settle(ctx, id, companyID, leave.StateApprove)
}

// Reject implements leave.Service.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, companyID string) error {
	return s.settle(ctx, id, companyID, leave.StateReject)
}
