package holiday

import "context"

type Service interface {
	// Create declares a public holiday and mirrors it as a company-wide leave
	// entry so attendance and payroll treat the date as non-working.
	Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, companyID string) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string, companyID string) error
}
