package http

import (
	"encoding/json"
	"net/http"

	"github.com/forher-hr/hr-backend-go/internal/domain/auth"
	"github.com/forher-hr/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuthHandler interface {
	KioskLogin(w http.ResponseWriter, r *http.Request)
	SetPIN(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// KioskLogin implements AuthHandler. The company comes from the kiosk URL,
// not from a token: kiosk devices are provisioned per company.
func (h *authHandlerImpl) KioskLogin(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	if companyID == "" {
		response.BadRequest(w, "Company ID is required", nil)
		return
	}

	var req auth.KioskLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.authService.KioskLogin(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// SetPIN implements AuthHandler.
func (h *authHandlerImpl) SetPIN(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req setPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.authService.SetPIN(r.Context(), employeeID, companyID, req.PIN); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Kiosk PIN updated", nil)
}
