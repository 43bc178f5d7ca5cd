package http

import (
	"net/http"

	"github.com/forher-hr/hr-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

// identityFromRequest pulls the authenticated employee and company out of
// the verified JWT claims.
func identityFromRequest(r *http.Request) (employeeID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", auth.ErrInvalidToken
	}

	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", auth.ErrInvalidToken
	}

	return employeeID, companyID, nil
}
