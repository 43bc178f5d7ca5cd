package employee

import "time"

type WorkMode string

const (
	WorkModeFulltime WorkMode = "fulltime"
	WorkModeParttime WorkMode = "parttime"
)

type Employee struct {
	ID           string
	CompanyID    string
	Code         string
	FullName     string
	Timezone     *string // IANA zone name; UTC when absent
	WorkMode     WorkMode
	KioskPINHash *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StandardWorkDays returns the expected work days for the month containing
// ref: fulltime staff work the month minus four rest days, parttime staff
// have no fixed expectation.
func (e Employee) StandardWorkDays(ref time.Time) int {
	if e.WorkMode != WorkModeFulltime {
		return 0
	}
	firstOfNext := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	daysInMonth := firstOfNext.AddDate(0, 0, -1).Day()
	return daysInMonth - 4
}
