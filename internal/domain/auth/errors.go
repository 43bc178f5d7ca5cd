package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid employee code or pin")
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrPINNotSet          = errors.New("employee has no kiosk pin configured")
	ErrInvalidToken       = errors.New("invalid or missing access token")
)
