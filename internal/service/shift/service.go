package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	templateRepo   shift.TemplateRepository
	assignmentRepo shift.AssignmentRepository
	employeeRepo   employee.Repository
}

func NewShiftService(
	templateRepo shift.TemplateRepository,
	assignmentRepo shift.AssignmentRepository,
	employeeRepo employee.Repository,
) shift.Service {
	return &ShiftServiceImpl{
		templateRepo:   templateRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

func toTemplateResponse(tpl shift.Template) shift.TemplateResponse {
	return shift.TemplateResponse{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Code:      tpl.Code,
		StartTime: tpl.StartTime,
		EndTime:   tpl.EndTime,
		Duration:  tpl.Duration(),
		Label:     tpl.Label(),
		Active:    tpl.Active,
	}
}

func toAssignmentResponse(a shift.Assignment) shift.AssignmentResponse {
	resp := shift.AssignmentResponse{
		ID:          a.ID,
		ShiftID:     a.ShiftID,
		Date:        a.Date.Format("2006-01-02"),
		EmployeeIDs: a.EmployeeIDs,
	}
	if a.Shift != nil {
		resp.ShiftLabel = a.Shift.Label()
	}
	return resp
}

// CreateTemplate implements shift.Service.
func (s *ShiftServiceImpl) CreateTemplate(ctx context.Context, companyID string, req shift.CreateTemplateRequest) (shift.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.TemplateResponse{}, err
	}
	if req.EndTime <= req.StartTime {
		return shift.TemplateResponse{}, shift.ErrInvalidWindow
	}

	sequence := 10
	if req.Sequence != nil {
		sequence = *req.Sequence
	}

	tpl := shift.Template{
		CompanyID: companyID,
		Name:      req.Name,
		Code:      req.Code,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Sequence:  sequence,
		Active:    true,
		Note:      req.Note,
	}
	created, err := s.templateRepo.Create(ctx, tpl)
	if err != nil {
		return shift.TemplateResponse{}, fmt.Errorf("create shift template: %w", err)
	}
	return toTemplateResponse(created), nil
}

// GetTemplate implements shift.Service.
func (s *ShiftServiceImpl) GetTemplate(ctx context.Context, id string, companyID string) (shift.TemplateResponse, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.TemplateResponse{}, err
	}
	return toTemplateResponse(tpl), nil
}

// ListTemplates implements shift.Service.
func (s *ShiftServiceImpl) ListTemplates(ctx context.Context, companyID string) ([]shift.TemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx, companyID, false)
	if err != nil {
		return nil, fmt.Errorf("list shift templates: %w", err)
	}
	out := make([]shift.TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, toTemplateResponse(tpl))
	}
	return out, nil
}

// DeleteTemplate implements shift.Service.
func (s *ShiftServiceImpl) DeleteTemplate(ctx context.Context, id string, companyID string) error {
	if _, err := s.templateRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id, companyID)
}

// Assign implements shift.Service. Every employee must belong to the company;
// the repository's uniqueness constraint rejects a second assignment of the
// same template on the same date.
func (s *ShiftServiceImpl) Assign(ctx context.Context, companyID string, req shift.CreateAssignmentRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	tpl, err := s.templateRepo.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	for _, employeeID := range req.EmployeeIDs {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return shift.AssignmentResponse{}, fmt.Errorf("assign employee %s: %w", employeeID, err)
		}
		if emp.CompanyID != companyID {
			return shift.AssignmentResponse{}, employee.ErrEmployeeNotFound
		}
	}

	assignment := shift.Assignment{
		ShiftID:     tpl.ID,
		CompanyID:   companyID,
		Date:        date,
		EmployeeIDs: req.EmployeeIDs,
		Shift:       &tpl,
	}
	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	created.Shift = &tpl
	return toAssignmentResponse(created), nil
}

// ListAssignments implements shift.Service.
func (s *ShiftServiceImpl) ListAssignments(ctx context.Context, companyID string, from, to string) ([]shift.AssignmentResponse, error) {
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		fromDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		toDate = fromDate.AddDate(0, 0, 6)
	}

	assignments, err := s.assignmentRepo.ListForDateRange(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list shift assignments: %w", err)
	}
	out := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	return out, nil
}

// DeleteAssignment implements shift.Service.
func (s *ShiftServiceImpl) DeleteAssignment(ctx context.Context, id string, companyID string) error {
	if _, err := s.assignmentRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id, companyID)
}
