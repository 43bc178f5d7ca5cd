package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/leave"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, company_id, employee_id, leave_type_code, start_date, end_date,
	state, note, created_at, updated_at
`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.LeaveTypeCode,
		&req.StartDate, &req.EndDate, &req.State, &req.Note,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (
			id, company_id, employee_id, leave_type_code, start_date, end_date, state, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.CompanyID, req.EmployeeID, req.LeaveTypeCode,
		req.StartDate, req.EndDate, req.State, req.Note,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string, companyID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1 AND company_id = $2`

	req, err := scanLeave(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// Update implements leave.Repository.
func (r *leaveRepository) Update(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET start_date = $2, end_date = $3, state = $4, note = $5, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.StartDate, req.EndDate, req.State, req.Note)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ListApprovedOverlapping implements leave.Repository.
func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND state IN ('approve', 'confirm')
		  AND start_date <= $2
		  AND end_date >= $3
		ORDER BY start_date
	`

	return r.queryRequests(ctx, q, query, employeeID, to, from)
}

// ListHolidayOverlapping implements leave.Repository.
func (r *leaveRepository) ListHolidayOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE company_id = $1
		  AND employee_id IS NULL
		  AND leave_type_code = $2
		  AND state = 'approve'
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date
	`

	return r.queryRequests(ctx, q, query, companyID, leave.TypeCodeHoliday, to, from)
}

// HasApprovedLeaveOn implements leave.Repository.
func (r *leaveRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND state IN ('approve', 'confirm')
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	return exists, nil
}

func (r *leaveRepository) queryRequests(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
