package holiday

import "time"

// Holiday is one company-wide public holiday date. Dates are unique: the same
// day cannot be declared twice.
type Holiday struct {
	ID          string
	CompanyID   string
	Name        string
	Date        time.Time // calendar date, midnight UTC
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
