package leave

import "context"

// BalanceRepository persists per-user leave balances. Save is an upsert and
// must be atomic per balance row.
type BalanceRepository interface {
	// GetByUserID returns ErrBalanceNotFound when the user has no balance yet.
	GetByUserID(ctx context.Context, userID string) (Balance, error)
	Save(ctx context.Context, balance Balance) error
}

// CorrectionRequestRepository persists correction requests.
type CorrectionRequestRepository interface {
	// GetByID returns ErrRequestNotFound when the request does not exist.
	GetByID(ctx context.Context, id string) (CorrectionRequest, error)
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)
	Update(ctx context.Context, req CorrectionRequest) error
	ListByStatus(ctx context.Context, status RequestStatus) ([]CorrectionRequest, error)
}
