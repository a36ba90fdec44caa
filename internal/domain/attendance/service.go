package attendance

import "context"

// AttendanceService defines the attendance operations exposed to transports.
// Every write path runs through the shared classifier and aggregator; there
// is no direct record mutation.
type AttendanceService interface {
	// GetMonthly retrieves one (user, month) aggregate with its summary.
	GetMonthly(ctx context.Context, userID, monthYear string) (MonthlyAttendanceResponse, error)

	// UpsertDailyRecord classifies and writes a single day, then recomputes
	// the monthly summary.
	UpsertDailyRecord(ctx context.Context, req UpsertDailyRecordRequest) (MonthlyAttendanceResponse, error)

	// VerifySummary recomputes the summary and compares it with the stored
	// one, returning ErrSummaryDrift on mismatch.
	VerifySummary(ctx context.Context, userID, monthYear string) error
}
