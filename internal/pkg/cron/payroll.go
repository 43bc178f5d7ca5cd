package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
)

type PayrollJobs struct {
	payrollSvc payroll.Service
	db         *database.DB
	runDay     int
	runHour    int
}

func NewPayrollJobs(payrollSvc payroll.Service, db *database.DB, runDay, runHour int) *PayrollJobs {
	return &PayrollJobs{
		payrollSvc: payrollSvc,
		db:         db,
		runDay:     runDay,
		runHour:    runHour,
	}
}

// RegisterJobs registers the payroll cron jobs
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	// Fires an hour after the attendance close-out job.
	scheduler.AddJob("generate_monthly_payslip_runs", 1*time.Hour,
		OnMonthly(j.runDay, (j.runHour+1)%24, j.GenerateMonthlyRuns))
}

// GenerateMonthlyRuns opens a payslip run covering the previous calendar
// month for every company with active employees, generates draft payslips
// for the eligible contracts, and computes them. Companies that already
// have a run for the period are skipped, so a re-fired tick is harmless.
func (j *PayrollJobs) GenerateMonthlyRuns(ctx context.Context) error {
	slog.Info("Cron: Starting monthly payslip run generation")

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodStart := firstOfMonth.AddDate(0, -1, 0)
	periodEnd := firstOfMonth.AddDate(0, 0, -1)

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

	created := 0
	for _, companyID := range companyIDs {
		if covered, err := j.hasRunForPeriod(ctx, companyID, periodStart); err != nil {
			slog.Error("Cron: Failed to check existing runs", "company_id", companyID, "error", err)
			continue
		} else if covered {
			continue
		}

		run, err := j.payrollSvc.CreateRun(ctx, companyID, payroll.CreateRunRequest{
			DateStart: periodStart.Format("2006-01-02"),
			DateEnd:   periodEnd.Format("2006-01-02"),
		})
		if err != nil {
			slog.Error("Cron: Failed to create payslip run", "company_id", companyID, "error", err)
			continue
		}

		generated, err := j.payrollSvc.GeneratePayslips(ctx, run.ID, companyID)
		if err != nil {
			slog.Error("Cron: Failed to generate payslips",
				"company_id", companyID,
				"run_id", run.ID,
				"error", err)
			continue
		}

		if err := j.payrollSvc.ComputeRun(ctx, run.ID, companyID); err != nil {
			slog.Error("Cron: Failed to compute payslip run",
				"company_id", companyID,
				"run_id", run.ID,
				"error", err)
			continue
		}

		slog.Info("Cron: Payslip run generated",
			"company_id", companyID,
			"run_id", run.ID,
			"payslip_count", generated.PayslipCount)
		created++
	}

	slog.Info("Cron: Monthly payslip run generation finished", "runs_created", created)
	return nil
}

func (j *PayrollJobs) hasRunForPeriod(ctx context.Context, companyID string, periodStart time.Time) (bool, error) {
	runs, err := j.payrollSvc.ListRuns(ctx, companyID)
	if err != nil {
		return false, err
	}
	want := periodStart.Format("2006-01-02")
	for _, run := range runs {
		if run.DateStart == want {
			return true, nil
		}
	}
	return false, nil
}
