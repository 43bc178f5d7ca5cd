package postgresql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "holidays_company_id_date_key"}

	assert.True(t, isUniqueViolation(dup, "holidays_company_id_date_key"))
	assert.True(t, isUniqueViolation(dup, ""), "empty constraint matches any unique violation")
	assert.False(t, isUniqueViolation(dup, "salary_rules_structure_id_code_key"))

	// Partial unique indexes report the index name as the constraint.
	open := &pgconn.PgError{Code: "23505", ConstraintName: "attendance_punches_employee_id_open_idx"}
	assert.True(t, isUniqueViolation(open, "attendance_punches_employee_id_open_idx"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("plain"), ""))
}
