package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) schedule.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// GetByUserID implements schedule.ProfileRepository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (schedule.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, full_name, designation,
			   regular_in, regular_out,
			   saturday_in, saturday_out,
			   monthly_in, monthly_out,
			   created_at, updated_at
		FROM schedule_profiles
		WHERE user_id = $1
	`

	var profile schedule.Profile
	var regularIn, regularOut, saturdayIn, saturdayOut, monthlyIn, monthlyOut *string
	err := q.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.FullName, &profile.Designation,
		&regularIn, &regularOut,
		&saturdayIn, &saturdayOut,
		&monthlyIn, &monthlyOut,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Profile{}, schedule.ErrProfileNotFound
		}
		return schedule.Profile{}, err
	}

	profile.Regular = windowFrom(regularIn, regularOut)
	profile.Saturday = windowFrom(saturdayIn, saturdayOut)
	profile.Monthly = windowFrom(monthlyIn, monthlyOut)

	return profile, nil
}

// ListUserIDs implements schedule.ProfileRepository.
func (r *profileRepositoryImpl) ListUserIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT user_id FROM schedule_profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// windowFrom builds a schedule window from nullable columns. A window exists
// only when both times are set.
func windowFrom(in, out *string) *schedule.Window {
	if in == nil || out == nil {
		return nil
	}
	return &schedule.Window{In: *in, Out: *out}
}
