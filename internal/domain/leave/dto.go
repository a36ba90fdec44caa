package leave

import (
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// CORRECTION REQUEST DTOs
// ========================================

type CreateCorrectionRequest struct {
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	RequestedStatus string `json:"requested_status"`
	Reason          string `json:"reason"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.RequestedStatus) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_status",
			Message: "requested_status is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.StartTime != "" {
		if _, ok := validator.IsValidClockTime(r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:mm format",
			})
		}
	}

	if r.EndTime != "" {
		if _, ok := validator.IsValidClockTime(r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:mm format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequest struct {
	ID           string   `json:"id"`
	ApproverID   string   `json:"approver_id"`
	ApproverRole string   `json:"approver_role"`
	Remarks      string   `json:"remarks,omitempty"`
	Value        *float64 `json:"value,omitempty"` // approver override of the classifier value
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if !validator.IsInSlice(r.ApproverRole, ApproverRoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_role",
			Message: "approver_role must be one of: partner, hr",
		})
	}

	if r.Value != nil && (*r.Value < 0 || *r.Value > 1.2) {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must be between 0 and 1.2",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequest struct {
	ID           string `json:"id"`
	ApproverID   string `json:"approver_id"`
	ApproverRole string `json:"approver_role"`
	Remarks      string `json:"remarks"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if !validator.IsInSlice(r.ApproverRole, ApproverRoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_role",
			Message: "approver_role must be one of: partner, hr",
		})
	}

	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks are required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// BULK DTOs
// ========================================

type BulkAction string

const (
	BulkActionApprove BulkAction = "approve"
	BulkActionReject  BulkAction = "reject"
)

// BulkItem carries the per-request value/remark when the batch is not
// uniform.
type BulkItem struct {
	Value  *float64 `json:"value,omitempty"`
	Remark string   `json:"remark,omitempty"`
}

// BulkDecisionRequest applies one action to a batch of requests. Exactly one
// of Uniform or PerItem should be set; with neither, requests are processed
// with no value override and no remark.
type BulkDecisionRequest struct {
	Action       BulkAction          `json:"action"`
	RequestIDs   []string            `json:"request_ids"`
	ApproverID   string              `json:"approver_id"`
	ApproverRole string              `json:"approver_role"`
	Uniform      *BulkItem           `json:"uniform,omitempty"`
	PerItem      map[string]BulkItem `json:"per_item,omitempty"`
}

func (r *BulkDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Action != BulkActionApprove && r.Action != BulkActionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(r.RequestIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "request_ids",
			Message: "request_ids must not be empty",
		})
	}

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if !validator.IsInSlice(r.ApproverRole, ApproverRoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_role",
			Message: "approver_role must be one of: partner, hr",
		})
	}

	if r.Uniform != nil && len(r.PerItem) > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "uniform and per_item modes are mutually exclusive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkItemError records one failed item without aborting the batch.
type BulkItemError struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// BulkResult reports how a batch went. Skipped terminal requests count
// neither as successes nor as errors.
type BulkResult struct {
	SuccessCount int             `json:"success_count"`
	SkippedCount int             `json:"skipped_count"`
	Errors       []BulkItemError `json:"errors"`
}

// ========================================
// BALANCE DTOs
// ========================================

type BalanceResponse struct {
	UserID        string `json:"user_id"`
	Earned        string `json:"earned"`
	Used          string `json:"used"`
	Remaining     string `json:"remaining"`
	MonthlyEarned string `json:"monthly_earned"`
	LastUpdated   string `json:"last_updated,omitempty"`
}

// ToBalanceResponse maps a balance to its read shape. Decimal fields are
// rendered as strings to keep precision across clients.
func ToBalanceResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{
		UserID:        b.UserID,
		Earned:        b.Earned.String(),
		Used:          b.Used.String(),
		Remaining:     b.Remaining.String(),
		MonthlyEarned: b.MonthlyEarned.String(),
	}
	if !b.LastUpdated.IsZero() {
		resp.LastUpdated = b.LastUpdated.Format("2006-01-02 15:04:05")
	}
	return resp
}

// DayUsage is the per-date outcome of a multi-day leave preview.
type DayUsage struct {
	Date string `json:"date"`
	Usage
}
