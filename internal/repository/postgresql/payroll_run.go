package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepository{db: db}
}

// Create implements payroll.RunRepository.
func (r *runRepository) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payslip_runs (id, name, company_id, date_start, date_end, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		run.ID, run.Name, run.CompanyID, run.DateStart, run.DateEnd, run.State,
	).Scan(&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payslip run: %w", err)
	}
	return run, nil
}

// GetByID implements payroll.RunRepository.
func (r *runRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, company_id, date_start, date_end, state, created_at, updated_at
		FROM payslip_runs
		WHERE id = $1 AND company_id = $2
	`

	var run payroll.Run
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&run.ID, &run.Name, &run.CompanyID, &run.DateStart, &run.DateEnd,
		&run.State, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payslip run: %w", err)
	}
	return run, nil
}

// List implements payroll.RunRepository.
func (r *runRepository) List(ctx context.Context, companyID string) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, company_id, date_start, date_end, state, created_at, updated_at
		FROM payslip_runs
		WHERE company_id = $1
		ORDER BY date_start DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		var run payroll.Run
		err := rows.Scan(
			&run.ID, &run.Name, &run.CompanyID, &run.DateStart, &run.DateEnd,
			&run.State, &run.CreatedAt, &run.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// UpdateState implements payroll.RunRepository.
func (r *runRepository) UpdateState(ctx context.Context, id string, state payroll.RunState) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payslip_runs SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("failed to update payslip run state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

type salesDataRepository struct {
	db *database.DB
}

func NewSalesDataRepository(db *database.DB) payroll.SalesDataRepository {
	return &salesDataRepository{db: db}
}

const salesColumns = `
	id, run_id, employee_id, company_id, date, amount, products_sold, reference, note, created_at
`

func scanSalesData(row pgx.Row) (payroll.SalesData, error) {
	var s payroll.SalesData
	err := row.Scan(
		&s.ID, &s.RunID, &s.EmployeeID, &s.CompanyID, &s.Date,
		&s.Amount, &s.ProductsSold, &s.Reference, &s.Note, &s.CreatedAt,
	)
	return s, err
}

// Create implements payroll.SalesDataRepository.
func (r *salesDataRepository) Create(ctx context.Context, s payroll.SalesData) (payroll.SalesData, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sales_data (id, run_id, employee_id, company_id, date, amount, products_sold, reference, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.RunID, s.EmployeeID, s.CompanyID, s.Date,
		s.Amount, s.ProductsSold, s.Reference, s.Note,
	).Scan(&s.CreatedAt)
	if err != nil {
		return payroll.SalesData{}, fmt.Errorf("failed to create sales data: %w", err)
	}
	return s, nil
}

// BulkCreate implements payroll.SalesDataRepository.
func (r *salesDataRepository) BulkCreate(ctx context.Context, records []payroll.SalesData) error {
	for _, record := range records {
		if _, err := r.Create(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// ListForRun implements payroll.SalesDataRepository.
func (r *salesDataRepository) ListForRun(ctx context.Context, runID string, employeeID string) ([]payroll.SalesData, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salesColumns + ` FROM sales_data WHERE run_id = $1 AND employee_id = $2 ORDER BY date`

	return r.querySales(ctx, q, query, runID, employeeID)
}

// ListForPeriod implements payroll.SalesDataRepository.
func (r *salesDataRepository) ListForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]payroll.SalesData, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salesColumns + ` FROM sales_data WHERE employee_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`

	return r.querySales(ctx, q, query, employeeID, from, to)
}

func (r *salesDataRepository) querySales(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.SalesData, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales data: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalesData
	for rows.Next() {
		s, err := scanSalesData(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales data: %w", err)
		}
		records = append(records, s)
	}
	return records, rows.Err()
}
