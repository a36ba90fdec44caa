package leave

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
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedAttendance(t *testing.T, repo *memory.MonthlyAttendanceRepository, userID, monthYear string) {
	t.Helper()
	doc := attendance.NewMonthlyAttendance(userID, monthYear)
	doc.Records[monthYear+"-01"] = attendance.DailyRecord{
		CheckIn: "09:00", CheckOut: "18:00", TotalHour: 9,
		PresenceType: attendance.PresenceThumbMachine, Value: 1,
	}
	require.NoError(t, repo.Save(context.Background(), doc))
}

func newLedgerFixture(t *testing.T, now time.Time) (leave.LedgerService, *memory.BalanceRepository, *memory.MonthlyAttendanceRepository) {
	t.Helper()
	balanceRepo := memory.NewBalanceRepository()
	attendanceRepo := memory.NewMonthlyAttendanceRepository()
	svc := NewLedgerService(balanceRepo, attendanceRepo, clock.Fixed(now), testLogger())
	return svc, balanceRepo, attendanceRepo
}

func TestGetBalanceDefaultsToZero(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, time.Now())

	balance, err := svc.GetBalance(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, balance.Earned.IsZero())
	assert.True(t, balance.Remaining.IsZero())
	assert.True(t, balance.MonthlyEarned.Equal(decimal.NewFromInt(2)))
}

func TestAccrueMonthly(t *testing.T) {
	ctx := context.Background()
	svc, _, attendanceRepo := newLedgerFixture(t, time.Date(2024, 8, 1, 2, 0, 0, 0, time.UTC))
	seedAttendance(t, attendanceRepo, "u1", "2024-07")

	balance, err := svc.AccrueMonthly(ctx, "u1", "2024-07")
	require.NoError(t, err)

	assert.True(t, balance.Earned.Equal(decimal.NewFromInt(2)))
	assert.True(t, balance.Remaining.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "2024-07", balance.LastUpdated.Format("2006-01"))
}

func TestAccrueMonthlyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, attendanceRepo := newLedgerFixture(t, time.Date(2024, 8, 1, 2, 0, 0, 0, time.UTC))
	seedAttendance(t, attendanceRepo, "u1", "2024-07")

	_, err := svc.AccrueMonthly(ctx, "u1", "2024-07")
	require.NoError(t, err)

	// Second call for the same month changes nothing.
	balance, err := svc.AccrueMonthly(ctx, "u1", "2024-07")
	require.NoError(t, err)
	assert.True(t, balance.Earned.Equal(decimal.NewFromInt(2)), "earned should stay at 2, got %s", balance.Earned)

	// A new month accrues again.
	seedAttendance(t, attendanceRepo, "u1", "2024-08")
	balance, err = svc.AccrueMonthly(ctx, "u1", "2024-08")
	require.NoError(t, err)
	assert.True(t, balance.Earned.Equal(decimal.NewFromInt(4)))
}

func TestAccrueMonthlyRequiresActivity(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, time.Now())

	_, err := svc.AccrueMonthly(context.Background(), "u1", "2024-07")
	assert.ErrorIs(t, err, leave.ErrNoAttendanceActivity)
}

func TestCalculateLeaveUsage(t *testing.T) {
	ctx := context.Background()
	svc, balanceRepo, _ := newLedgerFixture(t, time.Now())

	// No balance: unpaid.
	usage, err := svc.CalculateLeaveUsage(ctx, "u1", "2024-07-10", attendance.PresenceOnLeave)
	require.NoError(t, err)
	assert.False(t, usage.IsPaidLeave)
	assert.Equal(t, 0.0, usage.Value)

	b := leave.NewBalance("u1")
	b.Earned = decimal.NewFromInt(2)
	b.Remaining = decimal.NewFromInt(2)
	require.NoError(t, balanceRepo.Save(ctx, b))

	usage, err = svc.CalculateLeaveUsage(ctx, "u1", "2024-07-10", attendance.PresenceOnLeave)
	require.NoError(t, err)
	assert.True(t, usage.IsPaidLeave)
	assert.Equal(t, 1.0, usage.Value)

	// Non-leave types never draw on the balance.
	usage, err = svc.CalculateLeaveUsage(ctx, "u1", "2024-07-10", attendance.PresenceThumbMachine)
	require.NoError(t, err)
	assert.False(t, usage.IsPaidLeave)
	assert.Equal(t, 1.0, usage.Value)
}

func TestCalculateLeaveUsageForMultipleDays(t *testing.T) {
	ctx := context.Background()
	svc, balanceRepo, _ := newLedgerFixture(t, time.Now())

	b := leave.NewBalance("u1")
	b.Earned = decimal.NewFromInt(2)
	b.Remaining = decimal.NewFromInt(2)
	require.NoError(t, balanceRepo.Save(ctx, b))

	dates := []string{"2024-07-12", "2024-07-10", "2024-07-11", "2024-07-08", "2024-07-09"}
	usages, err := svc.CalculateLeaveUsageForMultipleDays(ctx, "u1", dates, attendance.PresenceOnLeave)
	require.NoError(t, err)
	require.Len(t, usages, 5)

	// Walked chronologically: the first two days are paid, the rest unpaid.
	assert.Equal(t, "2024-07-08", usages[0].Date)
	assert.True(t, usages[0].IsPaidLeave)
	assert.True(t, usages[1].IsPaidLeave)
	assert.False(t, usages[2].IsPaidLeave)
	assert.False(t, usages[3].IsPaidLeave)
	assert.False(t, usages[4].IsPaidLeave)

	// Preview must not touch the stored balance.
	stored, err := balanceRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.Remaining.Equal(decimal.NewFromInt(2)))
}

func TestApplyApproval(t *testing.T) {
	ctx := context.Background()
	svc, balanceRepo, _ := newLedgerFixture(t, time.Now())

	b := leave.NewBalance("u1")
	b.Earned = decimal.NewFromInt(2)
	b.Remaining = decimal.NewFromInt(2)
	require.NoError(t, balanceRepo.Save(ctx, b))

	balance, err := svc.ApplyApproval(ctx, "u1", 1)
	require.NoError(t, err)
	assert.True(t, balance.Used.Equal(decimal.NewFromInt(1)))
	assert.True(t, balance.Remaining.Equal(decimal.NewFromInt(1)))
}

func TestApplyApprovalClampsRemaining(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedgerFixture(t, time.Now())

	balance, err := svc.ApplyApproval(ctx, "u1", 2)
	require.NoError(t, err)
	assert.True(t, balance.Used.Equal(decimal.NewFromInt(2)))
	assert.True(t, balance.Remaining.IsZero())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, balanceRepo, attendanceRepo := newLedgerFixture(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	seedAttendance(t, attendanceRepo, "u1", "2024-07")

	_, err := svc.AccrueMonthly(ctx, "u1", "2024-07")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "u1"))

	balance, err := balanceRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Earned.IsZero())
	assert.True(t, balance.Used.IsZero())
	assert.True(t, balance.Remaining.IsZero())

	// After a reset the month can accrue again.
	balance, err = svc.AccrueMonthly(ctx, "u1", "2024-07")
	require.NoError(t, err)
	assert.True(t, balance.Earned.Equal(decimal.NewFromInt(2)))
}

func TestResetUnknownUser(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, time.Now())
	err := svc.Reset(context.Background(), "ghost")
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}
