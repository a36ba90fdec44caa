package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Accrue(w http.ResponseWriter, r *http.Request)
	PreviewUsage(w http.ResponseWriter, r *http.Request)
	ResetBalance(w http.ResponseWriter, r *http.Request)

	SubmitRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	BulkDecide(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	ledgerService  leave.LedgerService
	requestService leave.RequestService
	bulkService    leave.BulkService
}

func NewLeaveHandler(
	ledgerService leave.LedgerService,
	requestService leave.RequestService,
	bulkService leave.BulkService,
) LeaveHandler {
	return &leaveHandlerImpl{
		ledgerService:  ledgerService,
		requestService: requestService,
		bulkService:    bulkService,
	}
}

// GetBalance implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	balance, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToBalanceResponse(balance))
}

type accrueRequest struct {
	MonthYear string `json:"month_year"`
}

// Accrue implements LeaveHandler. Administrative trigger for the monthly
// accrual; the cron job calls the same service method.
func (h *leaveHandlerImpl) Accrue(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req accrueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.ledgerService.AccrueMonthly(r.Context(), userID, req.MonthYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Accrual applied", leave.ToBalanceResponse(balance))
}

type previewUsageRequest struct {
	Dates           []string `json:"dates"`
	RequestedStatus string   `json:"requested_status"`
}

// PreviewUsage implements LeaveHandler. Read-only paid/unpaid split for a
// set of dates; nothing is persisted.
func (h *leaveHandlerImpl) PreviewUsage(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req previewUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	usages, err := h.ledgerService.CalculateLeaveUsageForMultipleDays(
		r.Context(), userID, req.Dates, attendance.PresenceType(req.RequestedStatus),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usages)
}

// ResetBalance implements LeaveHandler. Administrative: zeroes the ledger.
func (h *leaveHandlerImpl) ResetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.ledgerService.Reset(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance reset", nil)
}

// SubmitRequest implements LeaveHandler.
func (h *leaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", created)
}

// ApproveRequest implements LeaveHandler.
func (h *leaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "requestID")

	approved, err := h.requestService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request approved", approved)
}

// RejectRequest implements LeaveHandler.
func (h *leaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "requestID")

	rejected, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request rejected", rejected)
}

// ListPendingRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// BulkDecide implements LeaveHandler.
func (h *leaveHandlerImpl) BulkDecide(w http.ResponseWriter, r *http.Request) {
	var req leave.BulkDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.bulkService.BulkApply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
