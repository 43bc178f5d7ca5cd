package holiday

import (
	"context"
	"time"
)

// Repository defines data access for the holiday calendar.
type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context, companyID string) ([]Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error

	// DatesBetween returns the holiday dates in [from, to] as calendar dates.
	// Callers treat the result as a set.
	DatesBetween(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error)
}
