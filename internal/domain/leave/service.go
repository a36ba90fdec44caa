package leave

import (
	"context"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
)

// LedgerService owns the per-user leave balance.
type LedgerService interface {
	// GetBalance returns the current balance, or a zeroed one for users with
	// no ledger row yet.
	GetBalance(ctx context.Context, userID string) (Balance, error)

	// AccrueMonthly adds the monthly accrual once per user per calendar
	// month, and only for users with attendance activity in that month.
	// Repeat calls within the same month are no-ops.
	AccrueMonthly(ctx context.Context, userID, monthYear string) (Balance, error)

	// CalculateLeaveUsage decides paid vs unpaid for one day. Pure read.
	CalculateLeaveUsage(ctx context.Context, userID, date string, requested attendance.PresenceType) (Usage, error)

	// CalculateLeaveUsageForMultipleDays walks dates in order against a local
	// working copy of the balance, so a partial balance splits into paid-then-
	// unpaid days.
	CalculateLeaveUsageForMultipleDays(ctx context.Context, userID string, dates []string, requested attendance.PresenceType) ([]DayUsage, error)

	// ApplyApproval is the only mutator that increases Used. Must be invoked
	// exactly once per approved request.
	ApplyApproval(ctx context.Context, userID string, paidDayCount int) (Balance, error)

	// Reset zeroes earned/used/remaining. Administrative only.
	Reset(ctx context.Context, userID string) error
}

// RequestService drives the correction-request lifecycle and its side
// effects on attendance and the ledger.
type RequestService interface {
	Submit(ctx context.Context, req CreateCorrectionRequest) (CorrectionRequest, error)
	Approve(ctx context.Context, req ApproveRequest) (CorrectionRequest, error)
	Reject(ctx context.Context, req RejectRequest) (CorrectionRequest, error)
	ListPending(ctx context.Context) ([]CorrectionRequest, error)
}

// BulkService applies a decision across a batch of requests, continuing past
// individual failures.
type BulkService interface {
	BulkApply(ctx context.Context, req BulkDecisionRequest) (BulkResult, error)
}
