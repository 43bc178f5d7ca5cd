package auth

import "context"

type Service interface {
	// KioskLogin exchanges an employee code and kiosk PIN for an access token.
	// Wrong code and wrong PIN are indistinguishable to the caller.
	KioskLogin(ctx context.Context, companyID string, req KioskLoginRequest) (LoginResponse, error)

	// SetPIN hashes and stores the employee's kiosk PIN.
	SetPIN(ctx context.Context, employeeID string, companyID string, pin string) error
}
