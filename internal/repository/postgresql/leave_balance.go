package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/pkg/database"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

// GetByUserID implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetByUserID(ctx context.Context, userID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, earned, used, remaining, monthly_earned,
			   last_updated, created_at, updated_at
		FROM leave_balances
		WHERE user_id = $1
	`

	var balance leave.Balance
	var lastUpdated sql.NullTime
	err := q.QueryRow(ctx, query, userID).Scan(
		&balance.ID, &balance.UserID,
		&balance.Earned, &balance.Used, &balance.Remaining, &balance.MonthlyEarned,
		&lastUpdated, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}

	if lastUpdated.Valid {
		balance.LastUpdated = lastUpdated.Time
	}

	return balance, nil
}

// Save implements leave.BalanceRepository. Upsert keyed by user; NUMERIC
// columns keep the decimal amounts exact.
func (r *balanceRepositoryImpl) Save(ctx context.Context, balance leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}

	var lastUpdated sql.NullTime
	if !balance.LastUpdated.IsZero() {
		lastUpdated = sql.NullTime{Time: balance.LastUpdated, Valid: true}
	}

	query := `
		INSERT INTO leave_balances (
			id, user_id, earned, used, remaining, monthly_earned,
			last_updated, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			earned = EXCLUDED.earned,
			used = EXCLUDED.used,
			remaining = EXCLUDED.remaining,
			monthly_earned = EXCLUDED.monthly_earned,
			last_updated = EXCLUDED.last_updated,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		balance.ID, balance.UserID,
		balance.Earned, balance.Used, balance.Remaining, balance.MonthlyEarned,
		lastUpdated,
	)
	return err
}
