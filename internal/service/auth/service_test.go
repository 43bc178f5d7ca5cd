package auth

import (
	"context"
	"testing"

	"github.com/forher-hr/hr-backend-go/internal/domain/auth"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCompanyID = "company-1"

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Code == code && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func newService(t *testing.T) (*AuthServiceImpl, *fakeEmployeeRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:           "emp-1",
			CompanyID:    testCompanyID,
			Code:         "2024-0001",
			FullName:     "Ayu Lestari",
			KioskPINHash: &hashStr,
			Active:       true,
		},
		"emp-2": {
			ID:        "emp-2",
			CompanyID: testCompanyID,
			Code:      "2024-0002",
			Active:    true,
		},
	}}
	return &AuthServiceImpl{
		employeeRepo: repo,
		jwtService:   jwt.NewJWTService("test-secret", "12h"),
	}, repo
}

func TestKioskLogin_Success(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	resp, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "2024-0001",
		PIN:          "123456",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Ayu Lestari", resp.EmployeeName)
	assert.Greater(t, resp.ExpiresIn, int64(0))
}

func TestKioskLogin_WrongPIN(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "2024-0001",
		PIN:          "654321",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestKioskLogin_UnknownCode(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "9999-9999",
		PIN:          "123456",
	})
	// Indistinguishable from a wrong PIN.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestKioskLogin_InactiveEmployee(t *testing.T) {
	t.Parallel()
	svc, repo := newService(t)
	e := repo.employees["emp-1"]
	e.Active = false
	repo.employees["emp-1"] = e

	_, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "2024-0001",
		PIN:          "123456",
	})
	assert.ErrorIs(t, err, auth.ErrEmployeeInactive)
}

func TestKioskLogin_PINNotSet(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "2024-0002",
		PIN:          "123456",
	})
	assert.ErrorIs(t, err, auth.ErrPINNotSet)
}

func TestKioskLogin_MalformedRequest(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.KioskLogin(context.Background(), testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "abc",
		PIN:          "12",
	})
	assert.Error(t, err)
}

func TestSetPIN_StoresVerifiableHash(t *testing.T) {
	t.Parallel()
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPIN(ctx, "emp-2", testCompanyID, "246810"))

	stored := repo.employees["emp-2"]
	require.NotNil(t, stored.KioskPINHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.KioskPINHash), []byte("246810")))

	_, err := svc.KioskLogin(ctx, testCompanyID, auth.KioskLoginRequest{
		EmployeeCode: "2024-0002",
		PIN:          "246810",
	})
	assert.NoError(t, err)
}

func TestSetPIN_RejectsShortPIN(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	err := svc.SetPIN(context.Background(), "emp-2", testCompanyID, "12")
	assert.Error(t, err)
}
