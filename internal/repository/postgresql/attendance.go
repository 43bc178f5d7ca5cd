package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const punchColumns = `
	p.id, p.employee_id, p.company_id, p.contract_id, p.shift_id, p.date,
	p.check_in, p.check_out, p.is_late, p.is_early, p.worked_hours,
	p.overtime_normal_hours, p.overtime_holiday_hours, p.is_holiday,
	p.state, p.note, p.created_at, p.updated_at
`

func scanPunch(row pgx.Row) (attendance.Punch, error) {
	var p attendance.Punch
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.ContractID, &p.ShiftID, &p.Date,
		&p.CheckIn, &p.CheckOut, &p.IsLate, &p.IsEarly, &p.WorkedHours,
		&p.OvertimeNormalHours, &p.OvertimeHolidayHours, &p.IsHoliday,
		&p.State, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements attendance.Repository.
func (r *attendanceRepository) Create(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	if punch.ID == "" {
		punch.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_punches (
			id, employee_id, company_id, contract_id, shift_id, date,
			check_in, check_out, is_late, is_early, worked_hours,
			overtime_normal_hours, overtime_holiday_hours, is_holiday, state, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		punch.ID, punch.EmployeeID, punch.CompanyID, punch.ContractID, punch.ShiftID, punch.Date,
		punch.CheckIn, punch.CheckOut, punch.IsLate, punch.IsEarly, punch.WorkedHours,
		punch.OvertimeNormalHours, punch.OvertimeHolidayHours, punch.IsHoliday, punch.State, punch.Note,
	).Scan(&punch.CreatedAt, &punch.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_punches_employee_id_open_idx") {
			return attendance.Punch{}, attendance.ErrOpenPunchExists
		}
		return attendance.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}
	return punch, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, punch attendance.Punch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_punches
		SET contract_id = $2, shift_id = $3, date = $4, check_in = $5, check_out = $6,
			is_late = $7, is_early = $8, worked_hours = $9,
			overtime_normal_hours = $10, overtime_holiday_hours = $11, is_holiday = $12,
			state = $13, note = $14, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		punch.ID, punch.ContractID, punch.ShiftID, punch.Date, punch.CheckIn, punch.CheckOut,
		punch.IsLate, punch.IsEarly, punch.WorkedHours,
		punch.OvertimeNormalHours, punch.OvertimeHolidayHours, punch.IsHoliday,
		punch.State, punch.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrPunchNotFound
	}
	return nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM attendance_punches p WHERE p.id = $1 AND p.company_id = $2`

	p, err := scanPunch(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrPunchNotFound
		}
		return attendance.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}
	return p, nil
}

// Delete implements attendance.Repository.
func (r *attendanceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_punches WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrPunchNotFound
	}
	return nil
}

// GetOpenPunch implements attendance.Repository.
func (r *attendanceRepository) GetOpenPunch(ctx context.Context, employeeID string) (*attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches p
		WHERE p.employee_id = $1 AND p.check_out IS NULL
		ORDER BY p.check_in DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open punch: %w", err)
	}
	return &p, nil
}

// CountPunchesBetween implements attendance.Repository.
func (r *attendanceRepository) CountPunchesBetween(ctx context.Context, employeeID string, fromUTC, toUTC time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM attendance_punches
		WHERE employee_id = $1 AND check_in >= $2 AND check_in < $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, fromUTC, toUTC).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count punches: %w", err)
	}
	return count, nil
}

// ListForPeriod implements attendance.Repository.
func (r *attendanceRepository) ListForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches p
		WHERE p.employee_id = $1 AND p.check_in >= $2 AND p.check_in < $3
		ORDER BY p.check_in
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter, companyID string) ([]attendance.Punch, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions = []string{"p.company_id = $1"}
		args       = []interface{}{companyID}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, "p.employee_id = $"+strconv.Itoa(len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conditions = append(conditions, "p.state = $"+strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		if d, ok := validator.IsValidDate(*filter.StartDate); ok {
			args = append(args, d)
			conditions = append(conditions, "p.date >= $"+strconv.Itoa(len(args)))
		}
	}
	if filter.EndDate != nil {
		if d, ok := validator.IsValidDate(*filter.EndDate); ok {
			args = append(args, d)
			conditions = append(conditions, "p.date <= $"+strconv.Itoa(len(args)))
		}
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_punches p WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + punchColumns + `, e.full_name
		FROM attendance_punches p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + where + `
		ORDER BY p.check_in DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var p attendance.Punch
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.ContractID, &p.ShiftID, &p.Date,
			&p.CheckIn, &p.CheckOut, &p.IsLate, &p.IsEarly, &p.WorkedHours,
			&p.OvertimeNormalHours, &p.OvertimeHolidayHours, &p.IsHoliday,
			&p.State, &p.Note, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, total, rows.Err()
}

// SummarizePeriod implements attendance.Repository.
func (r *attendanceRepository) SummarizePeriod(ctx context.Context, employeeID string, from, to time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(worked_hours), 0),
			   COUNT(DISTINCT date),
			   COALESCE(SUM(overtime_normal_hours), 0),
			   COALESCE(SUM(overtime_holiday_hours), 0)
		FROM attendance_punches
		WHERE employee_id = $1
		  AND check_in >= $2 AND check_in < $3
		  AND state IN ('confirmed', 'validated')
	`

	summary := attendance.Summary{EmployeeID: employeeID}
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&summary.TotalHours, &summary.WorkedDays,
		&summary.OvertimeNormalHours, &summary.OvertimeHolidayHours,
	)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize punches: %w", err)
	}
	return summary, nil
}
