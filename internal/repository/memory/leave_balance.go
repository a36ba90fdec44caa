package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
)

type BalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]leave.Balance
}

func NewBalanceRepository() *BalanceRepository {
	return &BalanceRepository{
		balances: make(map[string]leave.Balance),
	}
}

func (r *BalanceRepository) GetByUserID(_ context.Context, userID string) (leave.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance, ok := r.balances[userID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (r *BalanceRepository) Save(_ context.Context, balance leave.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}
	r.balances[balance.UserID] = balance
	return nil
}
