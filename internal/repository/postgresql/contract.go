package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/contract"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.Repository {
	return &contractRepository{db: db}
}

const contractColumns = `
	c.id, c.employee_id, c.company_id, c.state, c.date_start, c.date_end,
	c.wage, c.position_allowance, c.job_allowance, c.salary_structure_id,
	c.created_at, c.updated_at
`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.State, &c.DateStart, &c.DateEnd,
		&c.Wage, &c.PositionAllowance, &c.JobAllowance, &c.SalaryStructureID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements contract.Repository.
func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO contracts (
			id, employee_id, company_id, state, date_start, date_end,
			wage, position_allowance, job_allowance, salary_structure_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.CompanyID, c.State, c.DateStart, c.DateEnd,
		c.Wage, c.PositionAllowance, c.JobAllowance, c.SalaryStructureID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

// GetByID implements contract.Repository.
func (r *contractRepository) GetByID(ctx context.Context, id string, companyID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + ` FROM contracts c WHERE c.id = $1 AND c.company_id = $2`

	c, err := scanContract(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// Update implements contract.Repository.
func (r *contractRepository) Update(ctx context.Context, c contract.Contract) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET state = $2, date_start = $3, date_end = $4, wage = $5,
			position_allowance = $6, job_allowance = $7, salary_structure_id = $8,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		c.ID, c.State, c.DateStart, c.DateEnd, c.Wage,
		c.PositionAllowance, c.JobAllowance, c.SalaryStructureID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

// GetRunningByEmployee implements contract.Repository.
func (r *contractRepository) GetRunningByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts c
		WHERE c.employee_id = $1
		  AND c.state = ANY($2)
		ORDER BY c.date_start DESC
		LIMIT 1
	`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID, runningStates()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrNoRunningContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get running contract: %w", err)
	}
	return c, nil
}

// ListEligible implements contract.Repository.
func (r *contractRepository) ListEligible(ctx context.Context, companyID string, from, to time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts c
		WHERE c.company_id = $1
		  AND c.state = ANY($2)
		  AND c.salary_structure_id IS NOT NULL
		  AND c.date_start <= $3
		  AND (c.date_end IS NULL OR c.date_end >= $4)
		ORDER BY c.date_start, c.id
	`

	rows, err := q.Query(ctx, query, companyID, runningStates(), to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func runningStates() []string {
	states := make([]string, 0, len(contract.RunningStates))
	for _, s := range contract.RunningStates {
		states = append(states, string(s))
	}
	return states
}
