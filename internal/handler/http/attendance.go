package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	// Kiosk punches. The employee comes from the kiosk token.
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateTimes(w http.ResponseWriter, r *http.Request)

	// Review workflow
	Submit(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ResetToDraft(w http.ResponseWriter, r *http.Request)

	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ========== KIOSK PUNCHES ==========

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	// The token decides who punches, never the body
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckIn(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckOut(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== RECORDS ==========

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Punch ID is required", nil)
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.Filter{
		Page:  1,
		Limit: 20,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if state := r.URL.Query().Get("state"); state != "" {
		filter.State = &state
	}

	result, err := h.attendanceService.List(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Punches, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *attendanceHandlerImpl) UpdateTimes(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Punch ID is required", nil)
		return
	}

	var req attendance.UpdateTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.UpdateTimes(r.Context(), id, companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== REVIEW WORKFLOW ==========

func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Submit, "Punch submitted for review")
}

func (h *attendanceHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Confirm, "Punch confirmed")
}

func (h *attendanceHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Validate, "Punch validated")
}

func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Reject, "Punch rejected")
}

func (h *attendanceHandlerImpl) ResetToDraft(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.ResetToDraft, "Punch reset to draft")
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Delete, "Punch deleted")
}

func (h *attendanceHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, companyID string) error, message string) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Punch ID is required", nil)
		return
	}

	if err := fn(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}
