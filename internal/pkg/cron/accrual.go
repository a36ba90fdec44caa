package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
)

// AccrualJobs drives the monthly leave accrual. The service call is
// idempotent per (user, month), so the hourly cadence only bounds how late
// the accrual lands, never how often it is applied.
type AccrualJobs struct {
	attendanceRepo attendance.MonthlyAttendanceRepository
	ledger         leave.LedgerService
	clock          clock.Clock
}

func NewAccrualJobs(
	attendanceRepo attendance.MonthlyAttendanceRepository,
	ledger leave.LedgerService,
	clk clock.Clock,
) *AccrualJobs {
	return &AccrualJobs{
		attendanceRepo: attendanceRepo,
		ledger:         ledger,
		clock:          clk,
	}
}

func (j *AccrualJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("monthly_leave_accrual", 1*time.Hour, j.AccrueCurrentMonth)
}

// AccrueCurrentMonth credits the monthly accrual to every user with
// attendance activity in the current month.
func (j *AccrualJobs) AccrueCurrentMonth(ctx context.Context) error {
	monthYear := j.clock.Now().Format("2006-01")

	userIDs, err := j.attendanceRepo.ListUserIDsForMonth(ctx, monthYear)
	if err != nil {
		return err
	}

	var failed int
	for _, userID := range userIDs {
		if _, err := j.ledger.AccrueMonthly(ctx, userID, monthYear); err != nil {
			if errors.Is(err, leave.ErrNoAttendanceActivity) {
				continue
			}
			failed++
			slog.Error("accrual failed for user", "user_id", userID, "month_year", monthYear, "error", err)
		}
	}

	slog.Info("monthly accrual sweep finished",
		"month_year", monthYear,
		"users", len(userIDs),
		"failed", failed,
	)

	return nil
}
