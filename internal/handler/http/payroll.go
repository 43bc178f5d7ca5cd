package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/forher-hr/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Structures and rules
	CreateStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)

	// Payslips
	CreatePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	UpdatePayslipInputs(w http.ResponseWriter, r *http.Request)
	ComputePayslip(w http.ResponseWriter, r *http.Request)
	ConfirmPayslip(w http.ResponseWriter, r *http.Request)
	DonePayslip(w http.ResponseWriter, r *http.Request)
	CancelPayslip(w http.ResponseWriter, r *http.Request)
	ResetPayslip(w http.ResponseWriter, r *http.Request)

	// Runs
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GeneratePayslips(w http.ResponseWriter, r *http.Request)
	ComputeRun(w http.ResponseWriter, r *http.Request)
	ValidateRun(w http.ResponseWriter, r *http.Request)
	DoneRun(w http.ResponseWriter, r *http.Request)
	CancelRun(w http.ResponseWriter, r *http.Request)
	ResetRun(w http.ResponseWriter, r *http.Request)

	// Sales data
	ImportSales(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== STRUCTURES & RULES ==========

func (h *payrollHandlerImpl) CreateStructure(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreateStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateStructure(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure created", result)
}

func (h *payrollHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Structure ID is required", nil)
		return
	}

	result, err := h.payrollService.GetStructure(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListStructures(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	structureID := chi.URLParam(r, "id")
	if structureID == "" {
		response.BadRequest(w, "Structure ID is required", nil)
		return
	}

	var req payroll.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.StructureID = structureID

	result, err := h.payrollService.CreateRule(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary rule created", result)
}

func (h *payrollHandlerImpl) DeleteRule(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "ruleId")
	if id == "" {
		response.BadRequest(w, "Rule ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteRule(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary rule deleted", nil)
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayslip(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip created", result)
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := payroll.PayslipFilter{
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
	if runID := r.URL.Query().Get("run_id"); runID != "" {
		filter.RunID = &runID
	}
	if state := r.URL.Query().Get("state"); state != "" {
		filter.State = &state
	}

	result, total, err := h.payrollService.ListPayslips(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

func (h *payrollHandlerImpl) UpdatePayslipInputs(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	var req payroll.UpdatePayslipInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdatePayslipInputs(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	result, err := h.payrollService.ComputePayslip(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ConfirmPayslip(w http.ResponseWriter, r *http.Request) {
	h.payslipTransition(w, r, h.payrollService.ConfirmPayslip, "Payslip confirmed")
}

func (h *payrollHandlerImpl) DonePayslip(w http.ResponseWriter, r *http.Request) {
	h.payslipTransition(w, r, h.payrollService.DonePayslip, "Payslip done")
}

func (h *payrollHandlerImpl) CancelPayslip(w http.ResponseWriter, r *http.Request) {
	h.payslipTransition(w, r, h.payrollService.CancelPayslip, "Payslip cancelled")
}

func (h *payrollHandlerImpl) ResetPayslip(w http.ResponseWriter, r *http.Request) {
	h.payslipTransition(w, r, h.payrollService.ResetPayslip, "Payslip reset to draft")
}

func (h *payrollHandlerImpl) payslipTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, companyID string) error, message string) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	if err := fn(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateRun(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip run created", result)
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListRuns(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GeneratePayslips(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.payrollService.GeneratePayslips(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips generated", result)
}

func (h *payrollHandlerImpl) ComputeRun(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.payrollService.ComputeRun, "Payslip run computed")
}

func (h *payrollHandlerImpl) ValidateRun(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.payrollService.ValidateRun, "Payslip run validated")
}

func (h *payrollHandlerImpl) DoneRun(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.payrollService.DoneRun, "Payslip run done")
}

func (h *payrollHandlerImpl) CancelRun(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.payrollService.CancelRun, "Payslip run cancelled")
}

func (h *payrollHandlerImpl) ResetRun(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.payrollService.ResetRun, "Payslip run reset")
}

func (h *payrollHandlerImpl) runTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, runID, companyID string) error, message string) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	if err := fn(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ========== SALES DATA ==========

func (h *payrollHandlerImpl) ImportSales(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	var req payroll.ImportSalesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RunID = runID

	imported, err := h.payrollService.ImportSales(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sales data imported", map[string]int{"imported": imported})
}
