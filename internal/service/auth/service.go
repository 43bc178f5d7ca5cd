package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/forher-hr/hr-backend-go/internal/domain/auth"
	"github.com/forher-hr/hr-backend-go/internal/domain/employee"
	"github.com/forher-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/forher-hr/hr-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employeeRepo employee.Repository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.Repository, jwtService jwt.Service) auth.Service {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// KioskLogin implements auth.Service.
func (s *AuthServiceImpl) KioskLogin(ctx context.Context, companyID string, req auth.KioskLoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("get employee by code: %w", err)
	}
	if !emp.Active {
		return auth.LoginResponse{}, auth.ErrEmployeeInactive
	}
	if emp.KioskPINHash == nil {
		return auth.LoginResponse{}, auth.ErrPINNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*emp.KioskPINHash), []byte(req.PIN)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.CompanyID, emp.Code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  token,
		ExpiresIn:    expiresAt,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
	}, nil
}

// SetPIN implements auth.Service.
func (s *AuthServiceImpl) SetPIN(ctx context.Context, employeeID string, companyID string, pin string) error {
	if !validator.IsValidPIN(pin) {
		return validator.ValidationErrors{{Field: "pin", Message: "must be six digits"}}
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("get employee: %w", err)
	}
	if emp.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	hashStr := string(hash)
	emp.KioskPINHash = &hashStr

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}
