package holiday

import (
	"context"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/holiday"
	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"github.com/forher-hr/hr-backend-go/internal/repository/postgresql"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.Repository
	leaveRepo   leave.Repository

	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewHolidayService(db *database.DB, holidayRepo holiday.Repository, leaveRepo leave.Repository) holiday.Service {
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
		leaveRepo:   leaveRepo,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func toHolidayResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
	}
}

// Create implements holiday.Service. The calendar entry and its company-wide
// leave mirror are written in one transaction.
func (s *HolidayServiceImpl) Create(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var created holiday.Holiday
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.holidayRepo.Create(txCtx, holiday.Holiday{
			CompanyID:   companyID,
			Name:        req.Name,
			Date:        date,
			Description: req.Description,
		})
		if err != nil {
			return err
		}

		_, err = s.leaveRepo.Create(txCtx, leave.Request{
			CompanyID:     companyID,
			LeaveTypeCode: leave.TypeCodeHoliday,
			StartDate:     date,
			EndDate:       date,
			State:         leave.StateApprove,
			Note:          &created.Name,
		})
		if err != nil {
			return fmt.Errorf("create holiday leave entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toHolidayResponse(created), nil
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context, companyID string) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, toHolidayResponse(h))
	}
	return out, nil
}

// Delete implements holiday.Service.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string, companyID string) error {
	return s.holidayRepo.Delete(ctx, id, companyID)
}
