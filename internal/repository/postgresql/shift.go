package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftTemplateRepository struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) shift.TemplateRepository {
	return &shiftTemplateRepository{db: db}
}

const shiftTemplateColumns = `
	id, company_id, name, code, start_time, end_time, sequence, active, note,
	created_at, updated_at
`

func scanShiftTemplate(row pgx.Row) (shift.Template, error) {
	var tpl shift.Template
	err := row.Scan(
		&tpl.ID, &tpl.CompanyID, &tpl.Name, &tpl.Code, &tpl.StartTime, &tpl.EndTime,
		&tpl.Sequence, &tpl.Active, &tpl.Note, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	return tpl, err
}

// Create implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Create(ctx context.Context, tpl shift.Template) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)

	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shift_templates (id, company_id, name, code, start_time, end_time, sequence, active, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		tpl.ID, tpl.CompanyID, tpl.Name, tpl.Code, tpl.StartTime, tpl.EndTime,
		tpl.Sequence, tpl.Active, tpl.Note,
	).Scan(&tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return shift.Template{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return tpl, nil
}

// GetByID implements shift.TemplateRepository.
func (r *shiftTemplateRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE id = $1 AND company_id = $2`

	tpl, err := scanShiftTemplate(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Template{}, shift.ErrShiftNotFound
		}
		return shift.Template{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	return tpl, nil
}

// GetByCode implements shift.TemplateRepository.
func (r *shiftTemplateRepository) GetByCode(ctx context.Context, code string, companyID string) (shift.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE code = $1 AND company_id = $2`

	tpl, err := scanShiftTemplate(q.QueryRow(ctx, query, code, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Template{}, shift.ErrShiftNotFound
		}
		return shift.Template{}, fmt.Errorf("failed to get shift template by code: %w", err)
	}
	return tpl, nil
}

// List implements shift.TemplateRepository.
func (r *shiftTemplateRepository) List(ctx context.Context, companyID string, activeOnly bool) ([]shift.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE company_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY start_time, sequence`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	defer rows.Close()

	var templates []shift.Template
	for rows.Next() {
		tpl, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// Update implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Update(ctx context.Context, tpl shift.Template) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET name = $2, code = $3, start_time = $4, end_time = $5, sequence = $6,
			active = $7, note = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		tpl.ID, tpl.Name, tpl.Code, tpl.StartTime, tpl.EndTime,
		tpl.Sequence, tpl.Active, tpl.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_templates WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// Create implements shift.AssignmentRepository. The member rows live in a
// separate table; callers wanting atomicity run this inside a transaction.
func (r *shiftAssignmentRepository) Create(ctx context.Context, assignment shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shift_assignments (id, shift_id, company_id, date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID, assignment.ShiftID, assignment.CompanyID, assignment.Date,
	).Scan(&assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "shift_assignments_shift_id_date_key") {
			return shift.Assignment{}, shift.ErrDuplicateAssignment
		}
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	for _, employeeID := range assignment.EmployeeIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO shift_assignment_employees (assignment_id, employee_id) VALUES ($1, $2)`,
			assignment.ID, employeeID,
		)
		if err != nil {
			return shift.Assignment{}, fmt.Errorf("failed to add assignment employee: %w", err)
		}
	}
	return assignment, nil
}

// GetByID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.shift_id, a.company_id, a.date, a.created_at, a.updated_at,
			   COALESCE(array_agg(ae.employee_id) FILTER (WHERE ae.employee_id IS NOT NULL), '{}')
		FROM shift_assignments a
		LEFT JOIN shift_assignment_employees ae ON ae.assignment_id = a.id
		WHERE a.id = $1 AND a.company_id = $2
		GROUP BY a.id
	`

	var a shift.Assignment
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&a.ID, &a.ShiftID, &a.CompanyID, &a.Date, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return a, nil
}

// ListForEmployeeOnDate implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.shift_id, a.company_id, a.date, a.created_at, a.updated_at,
			   t.id, t.company_id, t.name, t.code, t.start_time, t.end_time,
			   t.sequence, t.active, t.note, t.created_at, t.updated_at
		FROM shift_assignments a
		JOIN shift_assignment_employees ae ON ae.assignment_id = a.id
		JOIN shift_templates t ON t.id = a.shift_id
		WHERE ae.employee_id = $1 AND a.date = $2
		ORDER BY t.start_time, a.id
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for employee: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var (
			a   shift.Assignment
			tpl shift.Template
		)
		err := rows.Scan(
			&a.ID, &a.ShiftID, &a.CompanyID, &a.Date, &a.CreatedAt, &a.UpdatedAt,
			&tpl.ID, &tpl.CompanyID, &tpl.Name, &tpl.Code, &tpl.StartTime, &tpl.EndTime,
			&tpl.Sequence, &tpl.Active, &tpl.Note, &tpl.CreatedAt, &tpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		a.EmployeeIDs = []string{employeeID}
		a.Shift = &tpl
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListForDateRange implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListForDateRange(ctx context.Context, companyID string, from, to time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.shift_id, a.company_id, a.date, a.created_at, a.updated_at,
			   COALESCE(array_agg(ae.employee_id) FILTER (WHERE ae.employee_id IS NOT NULL), '{}'),
			   t.id, t.company_id, t.name, t.code, t.start_time, t.end_time,
			   t.sequence, t.active, t.note, t.created_at, t.updated_at
		FROM shift_assignments a
		LEFT JOIN shift_assignment_employees ae ON ae.assignment_id = a.id
		JOIN shift_templates t ON t.id = a.shift_id
		WHERE a.company_id = $1 AND a.date >= $2 AND a.date <= $3
		GROUP BY a.id, t.id
		ORDER BY a.date, t.start_time
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var (
			a   shift.Assignment
			tpl shift.Template
		)
		err := rows.Scan(
			&a.ID, &a.ShiftID, &a.CompanyID, &a.Date, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeIDs,
			&tpl.ID, &tpl.CompanyID, &tpl.Name, &tpl.Code, &tpl.StartTime, &tpl.EndTime,
			&tpl.Sequence, &tpl.Active, &tpl.Note, &tpl.CreatedAt, &tpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		a.Shift = &tpl
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Delete implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}
