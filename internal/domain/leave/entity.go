package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
)

// DefaultMonthlyEarned is the accrual rate applied when a balance is first
// created: two leave days per month with attendance activity.
var DefaultMonthlyEarned = decimal.NewFromInt(2)

// Balance is the per-user leave ledger. Earned and Used only grow (except on
// administrative reset); Remaining is always Earned - Used clamped at zero.
// LastUpdated doubles as the accrual idempotency marker: accrual is a no-op
// when it already points into the target month.
type Balance struct {
	ID            string
	UserID        string
	Earned        decimal.Decimal
	Used          decimal.Decimal
	Remaining     decimal.Decimal
	MonthlyEarned decimal.Decimal
	LastUpdated   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBalance returns a zeroed balance with the default accrual rate.
func NewBalance(userID string) Balance {
	return Balance{
		UserID:        userID,
		Earned:        decimal.Zero,
		Used:          decimal.Zero,
		Remaining:     decimal.Zero,
		MonthlyEarned: DefaultMonthlyEarned,
	}
}

// Usage is the paid/unpaid decision for a single day.
type Usage struct {
	IsPaidLeave bool    `json:"is_paid_leave"`
	Value       float64 `json:"value"`
}

// UsageFor decides paid vs unpaid for one requested day against the current
// balance. Pure read: the balance is not mutated. Non-leave types are always
// full-value and never draw on the balance.
func (b Balance) UsageFor(requested attendance.PresenceType) Usage {
	if attendance.FamilyOf(requested) != attendance.FamilyLeave {
		return Usage{IsPaidLeave: false, Value: 1}
	}

	if b.Remaining.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Usage{IsPaidLeave: true, Value: 1}
	}

	return Usage{IsPaidLeave: false, Value: 0}
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsTerminal reports whether no further transition is permitted.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ApproverRole decides which remarks field a decision writes to.
type ApproverRole string

const (
	ApproverRolePartner ApproverRole = "partner"
	ApproverRoleHR      ApproverRole = "hr"
)

var ApproverRoleValues = []string{
	string(ApproverRolePartner),
	string(ApproverRoleHR),
}

// CorrectionRequest is one employee-submitted correction for one date.
// It transitions exactly once: pending -> approved or pending -> rejected.
type CorrectionRequest struct {
	ID              string
	UserID          string
	Date            string // "YYYY-MM-DD"
	RequestedStatus attendance.PresenceType
	OriginalStatus  attendance.PresenceType
	Reason          string
	StartTime       string // "HH:mm", optional, for WFH/onsite types
	EndTime         string

	Status         RequestStatus
	PartnerRemarks *string
	HRRemarks      *string
	ApprovedBy     *string
	ApprovedAt     *time.Time
	RejectedBy     *string
	RejectedAt     *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	UserName *string
}

// MonthYear returns the "YYYY-MM" prefix of the request date.
func (r CorrectionRequest) MonthYear() string {
	if len(r.Date) < 7 {
		return ""
	}
	return r.Date[:7]
}
