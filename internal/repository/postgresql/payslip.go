package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.number, p.employee_id, p.contract_id, p.structure_id, p.run_id,
	p.company_id, p.date_from, p.date_to, p.state,
	p.total_gross, p.total_deduction, p.total_net,
	p.leave_days, p.ot_normal_hours, p.ot_holiday_hours, p.rating,
	p.advance_amount, p.penalty_amount, p.created_at, p.updated_at
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.Number, &p.EmployeeID, &p.ContractID, &p.StructureID, &p.RunID,
		&p.CompanyID, &p.DateFrom, &p.DateTo, &p.State,
		&p.TotalGross, &p.TotalDeduction, &p.TotalNet,
		&p.LeaveDays, &p.OTNormalHours, &p.OTHolidayHours, &p.Rating,
		&p.AdvanceAmount, &p.PenaltyAmount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payroll.PayslipRepository.
func (r *payslipRepository) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payslips (
			id, number, employee_id, contract_id, structure_id, run_id, company_id,
			date_from, date_to, state, leave_days, ot_normal_hours, ot_holiday_hours,
			rating, advance_amount, penalty_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.Number, p.EmployeeID, p.ContractID, p.StructureID, p.RunID, p.CompanyID,
		p.DateFrom, p.DateTo, p.State, p.LeaveDays, p.OTNormalHours, p.OTHolidayHours,
		p.Rating, p.AdvanceAmount, p.PenaltyAmount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return p, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`

	var p payroll.Payslip
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.Number, &p.EmployeeID, &p.ContractID, &p.StructureID, &p.RunID,
		&p.CompanyID, &p.DateFrom, &p.DateTo, &p.State,
		&p.TotalGross, &p.TotalDeduction, &p.TotalNet,
		&p.LeaveDays, &p.OTNormalHours, &p.OTHolidayHours, &p.Rating,
		&p.AdvanceAmount, &p.PenaltyAmount, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	p.Lines, err = r.linesFor(ctx, q, p.ID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	return p, nil
}

// List implements payroll.PayslipRepository.
func (r *payslipRepository) List(ctx context.Context, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions = []string{"p.company_id = $1"}
		args       = []interface{}{companyID}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, "p.employee_id = $"+strconv.Itoa(len(args)))
	}
	if filter.RunID != nil {
		args = append(args, *filter.RunID)
		conditions = append(conditions, "p.run_id = $"+strconv.Itoa(len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conditions = append(conditions, "p.state = $"+strconv.Itoa(len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payslips p WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		WHERE ` + where + `
		ORDER BY p.date_from DESC, p.number
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, p)
	}
	return slips, total, rows.Err()
}

// ListByRun implements payroll.PayslipRepository. Lines are loaded because run
// actions inspect them.
func (r *payslipRepository) ListByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips p WHERE p.run_id = $1 ORDER BY p.number`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range slips {
		slips[i].Lines, err = r.linesFor(ctx, q, slips[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return slips, nil
}

// UpdateState implements payroll.PayslipRepository.
func (r *payslipRepository) UpdateState(ctx context.Context, id string, state payroll.PayslipState) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payslips SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("failed to update payslip state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

// UpdateInputs implements payroll.PayslipRepository.
func (r *payslipRepository) UpdateInputs(ctx context.Context, p payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET leave_days = $2, ot_normal_hours = $3, ot_holiday_hours = $4,
			rating = $5, advance_amount = $6, penalty_amount = $7, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		p.ID, p.LeaveDays, p.OTNormalHours, p.OTHolidayHours,
		p.Rating, p.AdvanceAmount, p.PenaltyAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip inputs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

// ReplaceLines implements payroll.PayslipRepository. Callers run this inside a
// transaction so a failed insert never leaves a half-replaced line set.
func (r *payslipRepository) ReplaceLines(ctx context.Context, p payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslip_lines WHERE payslip_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear payslip lines: %w", err)
	}

	insert := `
		INSERT INTO payslip_lines (id, payslip_id, rule_id, name, code, sequence, rule_type, quantity, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, line := range p.Lines {
		lineID := line.ID
		if lineID == "" {
			lineID = uuid.New().String()
		}
		_, err := q.Exec(ctx, insert,
			lineID, p.ID, line.RuleID, line.Name, line.Code, line.Sequence,
			line.RuleType, line.Quantity, line.Rate, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payslip line: %w", err)
		}
	}

	query := `
		UPDATE payslips
		SET total_gross = $2, total_deduction = $3, total_net = $4, state = $5, updated_at = now()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, p.ID, p.TotalGross, p.TotalDeduction, p.TotalNet, p.State)
	if err != nil {
		return fmt.Errorf("failed to update payslip totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

// ClearLines implements payroll.PayslipRepository.
func (r *payslipRepository) ClearLines(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslip_lines WHERE payslip_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear payslip lines: %w", err)
	}

	query := `
		UPDATE payslips
		SET total_gross = 0, total_deduction = 0, total_net = 0, updated_at = now()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to reset payslip totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) linesFor(ctx context.Context, q database.Querier, payslipID string) ([]payroll.PayslipLine, error) {
	query := `
		SELECT id, payslip_id, rule_id, name, code, sequence, rule_type, quantity, rate, amount
		FROM payslip_lines
		WHERE payslip_id = $1
		ORDER BY sequence, code
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.PayslipLine
	for rows.Next() {
		var line payroll.PayslipLine
		err := rows.Scan(
			&line.ID, &line.PayslipID, &line.RuleID, &line.Name, &line.Code,
			&line.Sequence, &line.RuleType, &line.Quantity, &line.Rate, &line.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
