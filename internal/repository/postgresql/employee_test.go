package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockContext begins a mock transaction and stores it on the context, so
// repository calls made through GetQuerier hit the mock instead of a pool.
func mockContext(t *testing.T) (context.Context, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	return context.WithValue(context.Background(), txKey{}, tx), mock
}

func TestEmployeeRepository_GetByCode(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := NewEmployeeRepository(nil)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "company_id", "code", "full_name", "timezone", "work_mode",
		"kiosk_pin_hash", "active", "created_at", "updated_at",
	}).AddRow(
		"emp-1", "company-1", "2024-0001", "Sari Dewi", nil, employee.WorkModeFulltime,
		nil, true, now, now,
	)

	mock.ExpectQuery(`SELECT (.+) FROM employees WHERE code = \$1 AND company_id = \$2`).
		WithArgs("2024-0001", "company-1").
		WillReturnRows(rows)

	e, err := repo.GetByCode(ctx, "2024-0001", "company-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", e.ID)
	assert.Equal(t, "Sari Dewi", e.FullName)
	assert.Equal(t, employee.WorkModeFulltime, e.WorkMode)
	assert.Nil(t, e.Timezone)
	assert.True(t, e.Active)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByCode_NotFound(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := NewEmployeeRepository(nil)

	mock.ExpectQuery(`SELECT (.+) FROM employees WHERE code = \$1 AND company_id = \$2`).
		WithArgs("9999-9999", "company-1").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByCode(ctx, "9999-9999", "company-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Update_NotFound(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := NewEmployeeRepository(nil)

	mock.ExpectExec(`UPDATE employees`).
		WithArgs("emp-missing", "Sari Dewi", (*string)(nil), employee.WorkModeFulltime, (*string)(nil), true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(ctx, employee.Employee{
		ID:       "emp-missing",
		FullName: "Sari Dewi",
		WorkMode: employee.WorkModeFulltime,
		Active:   true,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
