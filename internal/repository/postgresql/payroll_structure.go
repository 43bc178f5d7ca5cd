package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type structureRepository struct {
	db *database.DB
}

func NewStructureRepository(db *database.DB) payroll.StructureRepository {
	return &structureRepository{db: db}
}

// CreateStructure implements payroll.StructureRepository.
func (r *structureRepository) CreateStructure(ctx context.Context, s payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO salary_structures (id, company_id, name, active, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.CompanyID, s.Name, s.Active, s.Note).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}
	return s, nil
}

// GetStructure implements payroll.StructureRepository.
func (r *structureRepository) GetStructure(ctx context.Context, id string, companyID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, note, created_at, updated_at
		FROM salary_structures
		WHERE id = $1 AND company_id = $2
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Active, &s.Note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	rulesQuery := `
		SELECT id, structure_id, name, code, sequence, rule_type, formula,
			   always_include, description, created_at, updated_at
		FROM salary_rules
		WHERE structure_id = $1
		ORDER BY sequence, code
	`

	rows, err := q.Query(ctx, rulesQuery, s.ID)
	if err != nil {
		return payroll.SalaryStructure{}, fmt.Errorf("failed to list salary rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule payroll.SalaryRule
		err := rows.Scan(
			&rule.ID, &rule.StructureID, &rule.Name, &rule.Code, &rule.Sequence,
			&rule.RuleType, &rule.Formula, &rule.AlwaysInclude, &rule.Description,
			&rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return payroll.SalaryStructure{}, fmt.Errorf("failed to scan salary rule: %w", err)
		}
		s.Rules = append(s.Rules, rule)
	}
	return s, rows.Err()
}

// ListStructures implements payroll.StructureRepository.
func (r *structureRepository) ListStructures(ctx context.Context, companyID string, activeOnly bool) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, active, note, created_at, updated_at
		FROM salary_structures
		WHERE company_id = $1
	`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []payroll.SalaryStructure
	for rows.Next() {
		var s payroll.SalaryStructure
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Active, &s.Note, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}
	return structures, rows.Err()
}

// CreateRule implements payroll.StructureRepository.
func (r *structureRepository) CreateRule(ctx context.Context, rule payroll.SalaryRule) (payroll.SalaryRule, error) {
	q := GetQuerier(ctx, r.db)

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}

	query := `
		INSERT INTO salary_rules (id, structure_id, name, code, sequence, rule_type, formula, always_include, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.ID, rule.StructureID, rule.Name, rule.Code, rule.Sequence,
		rule.RuleType, rule.Formula, rule.AlwaysInclude, rule.Description,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "salary_rules_structure_id_code_key") {
			return payroll.SalaryRule{}, payroll.ErrRuleCodeExists
		}
		return payroll.SalaryRule{}, fmt.Errorf("failed to create salary rule: %w", err)
	}
	return rule, nil
}

// UpdateRule implements payroll.StructureRepository.
func (r *structureRepository) UpdateRule(ctx context.Context, rule payroll.SalaryRule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_rules
		SET name = $2, sequence = $3, rule_type = $4, formula = $5,
			always_include = $6, description = $7, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rule.ID, rule.Name, rule.Sequence, rule.RuleType, rule.Formula,
		rule.AlwaysInclude, rule.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRuleNotFound
	}
	return nil
}

// DeleteRule implements payroll.StructureRepository.
func (r *structureRepository) DeleteRule(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM salary_rules r
		USING salary_structures s
		WHERE r.id = $1 AND r.structure_id = s.id AND s.company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete salary rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRuleNotFound
	}
	return nil
}
