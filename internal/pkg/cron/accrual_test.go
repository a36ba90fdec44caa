package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/repository/memory"
	leaveService "github.com/hrcore/attendance-backend-go/internal/service/leave"
)

func TestAccrueCurrentMonth(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 31, 23, 0, 0, 0, time.UTC)

	attendanceRepo := memory.NewMonthlyAttendanceRepository()
	balanceRepo := memory.NewBalanceRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ledger := leaveService.NewLedgerService(balanceRepo, attendanceRepo, clock.Fixed(now), logger)

	for _, userID := range []string{"u1", "u2"} {
		doc := attendance.NewMonthlyAttendance(userID, "2024-07")
		doc.Records["2024-07-01"] = attendance.DailyRecord{
			CheckIn: "09:00", CheckOut: "18:00", TotalHour: 9,
			PresenceType: attendance.PresenceThumbMachine, Value: 1,
		}
		require.NoError(t, attendanceRepo.Save(ctx, doc))
	}

	// A user with an aggregate but no records gets no accrual.
	require.NoError(t, attendanceRepo.Save(ctx, attendance.NewMonthlyAttendance("u3", "2024-07")))

	jobs := NewAccrualJobs(attendanceRepo, ledger, clock.Fixed(now))

	require.NoError(t, jobs.AccrueCurrentMonth(ctx))
	// Second sweep in the same month is a no-op.
	require.NoError(t, jobs.AccrueCurrentMonth(ctx))

	for _, userID := range []string{"u1", "u2"} {
		balance, err := ledger.GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.True(t, balance.Earned.Equal(decimal.NewFromInt(2)), "user %s earned %s", userID, balance.Earned)
	}

	balance, err := ledger.GetBalance(ctx, "u3")
	require.NoError(t, err)
	assert.True(t, balance.Earned.IsZero())
}
