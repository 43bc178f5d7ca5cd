package leave

import "context"

type Service interface {
	// Create files a leave request in confirm state, awaiting review.
	Create(ctx context.Context, companyID string, req CreateLeaveRequest) (LeaveResponse, error)
	Get(ctx context.Context, id string, companyID string) (LeaveResponse, error)

	// Approve and Reject settle a pending request. A settled request cannot
	// be processed again.
	Approve(ctx context.Context, id string, companyID string) error
	Reject(ctx context.Context, id string, companyID string) error
}
