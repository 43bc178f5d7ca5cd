package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
)

type AttendanceJobs struct {
	attendanceSvc attendance.Service
	db            *database.DB
	runDay        int
	runHour       int
}

func NewAttendanceJobs(attendanceSvc attendance.Service, db *database.DB, runDay, runHour int) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		db:            db,
		runDay:        runDay,
		runHour:       runHour,
	}
}

// RegisterJobs registers the attendance cron jobs
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("aggregate_attendance_monthly", 1*time.Hour,
		OnMonthly(j.runDay, j.runHour, j.CloseOutPreviousMonth))
}

// CloseOutPreviousMonth confirms every punch from the previous calendar
// month that is still waiting for review. Payroll only counts confirmed
// and validated punches, so the month's review queue has to be closed
// before the payslip runs are generated.
func (j *AttendanceJobs) CloseOutPreviousMonth(ctx context.Context) error {
	slog.Info("Cron: Starting monthly attendance close-out")

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startDate := firstOfMonth.AddDate(0, -1, 0).Format("2006-01-02")
	endDate := firstOfMonth.AddDate(0, 0, -1).Format("2006-01-02")

	rows, err := j.db.Pool.Query(ctx, `SELECT DISTINCT company_id FROM employees WHERE active`)
	if err != nil {
		return fmt.Errorf("failed to get companies: %w", err)
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var companyID string
		if err := rows.Scan(&companyID); err != nil {
			continue
		}
		companyIDs = append(companyIDs, companyID)
	}

	confirmed := 0
	for _, companyID := range companyIDs {
		n, err := j.confirmPending(ctx, companyID, startDate, endDate)
		if err != nil {
			slog.Error("Cron: Failed to close out attendance", "company_id", companyID, "error", err)
			continue
		}
		confirmed += n
	}

	slog.Info("Cron: Monthly attendance close-out finished", "punches_confirmed", confirmed)
	return nil
}

func (j *AttendanceJobs) confirmPending(ctx context.Context, companyID, startDate, endDate string) (int, error) {
	state := string(attendance.StateToConfirm)
	confirmed := 0

	// Confirming removes a punch from the to_confirm page, so keep
	// re-reading page 1 until the filter comes back empty.
	for {
		result, err := j.attendanceSvc.List(ctx, attendance.Filter{
			StartDate: &startDate,
			EndDate:   &endDate,
			State:     &state,
			Page:      1,
			Limit:     100,
		}, companyID)
		if err != nil {
			return confirmed, err
		}
		if len(result.Punches) == 0 {
			return confirmed, nil
		}

		progressed := false
		for _, punch := range result.Punches {
			if err := j.attendanceSvc.Confirm(ctx, punch.ID, companyID); err != nil {
				slog.Error("Cron: Failed to confirm punch", "punch_id", punch.ID, "error", err)
				continue
			}
			confirmed++
			progressed = true
		}
		if !progressed {
			return confirmed, nil
		}
	}
}
