package attendance

import "context"

type Service interface {
	CheckIn(ctx context.Context, companyID string, req CheckInRequest) (PunchResponse, error)
	CheckOut(ctx context.Context, companyID string, req CheckOutRequest) (PunchResponse, error)

	Get(ctx context.Context, id string, companyID string) (PunchResponse, error)
	List(ctx context.Context, filter Filter, companyID string) (ListPunchResponse, error)

	// UpdateTimes edits a punch's check-in/check-out and reclassifies it.
	// Recomputing an unchanged punch yields identical derived fields.
	UpdateTimes(ctx context.Context, id string, companyID string, req UpdateTimesRequest) (PunchResponse, error)

	// Review workflow
	Submit(ctx context.Context, id string, companyID string) error
	Confirm(ctx context.Context, id string, companyID string) error
	Validate(ctx context.Context, id string, companyID string) error
	Reject(ctx context.Context, id string, companyID string) error
	ResetToDraft(ctx context.Context, id string, companyID string) error

	Delete(ctx context.Context, id string, companyID string) error
}
