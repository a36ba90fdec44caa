package attendance

import "context"

// MonthlyAttendanceRepository persists (user, month) aggregates as single
// documents. Save must be atomic at document granularity.
type MonthlyAttendanceRepository interface {
	// GetByUserMonth returns ErrAttendanceNotFound when no aggregate exists.
	GetByUserMonth(ctx context.Context, userID, monthYear string) (MonthlyAttendance, error)

	// Save upserts the whole aggregate, records and summary together.
	Save(ctx context.Context, doc MonthlyAttendance) error

	// ListUserIDsForMonth returns the users with at least one record in the
	// month. Drives monthly leave accrual.
	ListUserIDsForMonth(ctx context.Context, monthYear string) ([]string, error)
}
