package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

type LedgerServiceImpl struct {
	leave.BalanceRepository
	attendanceRepository attendance.MonthlyAttendanceRepository
	clock                clock.Clock
	logger               *slog.Logger
}

func NewLedgerService(
	balanceRepo leave.BalanceRepository,
	attendanceRepo attendance.MonthlyAttendanceRepository,
	clk clock.Clock,
	logger *slog.Logger,
) leave.LedgerService {
	return &LedgerServiceImpl{
		BalanceRepository:    balanceRepo,
		attendanceRepository: attendanceRepo,
		clock:                clk,
		logger:               logger,
	}
}

// GetBalance implements leave.LedgerService.
func (l *LedgerServiceImpl) GetBalance(ctx context.Context, userID string) (leave.Balance, error) {
	if validator.IsEmpty(userID) {
		return leave.Balance{}, validator.ValidationErrors{{
			Field:   "user_id",
			Message: "user_id is required",
		}}
	}

	balance, err := l.BalanceRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.NewBalance(userID), nil
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// AccrueMonthly implements leave.LedgerService. The call is idempotent per
// (user, month): LastUpdated records the month last credited, and a repeat
// call for the same month returns the balance unchanged.
func (l *LedgerServiceImpl) AccrueMonthly(ctx context.Context, userID, monthYear string) (leave.Balance, error) {
	if validator.IsEmpty(userID) || !validator.IsValidMonthYear(monthYear) {
		return leave.Balance{}, validator.ValidationErrors{{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		}}
	}

	balance, err := l.BalanceRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		balance = leave.NewBalance(userID)
	}

	if !balance.LastUpdated.IsZero() && balance.LastUpdated.Format("2006-01") == monthYear {
		l.logger.Debug("accrual already applied, skipping",
			"user_id", userID,
			"month_year", monthYear,
		)
		return balance, nil
	}

	doc, err := l.attendanceRepository.GetByUserMonth(ctx, userID, monthYear)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return leave.Balance{}, leave.ErrNoAttendanceActivity
		}
		return leave.Balance{}, fmt.Errorf("failed to get monthly attendance: %w", err)
	}
	if len(doc.Records) == 0 {
		return leave.Balance{}, leave.ErrNoAttendanceActivity
	}

	monthStart, _ := time.Parse("2006-01", monthYear)

	balance.Earned = balance.Earned.Add(balance.MonthlyEarned)
	balance.Remaining = remaining(balance.Earned, balance.Used)
	balance.LastUpdated = monthStart
	balance.UpdatedAt = l.clock.Now()

	if err := l.BalanceRepository.Save(ctx, balance); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to save leave balance: %w", err)
	}

	l.logger.Info("monthly leave accrued",
		"user_id", userID,
		"month_year", monthYear,
		"earned", balance.Earned.String(),
		"remaining", balance.Remaining.String(),
	)

	return balance, nil
}

// CalculateLeaveUsage implements leave.LedgerService.
func (l *LedgerServiceImpl) CalculateLeaveUsage(ctx context.Context, userID, date string, requested attendance.PresenceType) (leave.Usage, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return leave.Usage{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	balance, err := l.GetBalance(ctx, userID)
	if err != nil {
		return leave.Usage{}, err
	}

	return balance.UsageFor(requested), nil
}

// CalculateLeaveUsageForMultipleDays implements leave.LedgerService. Dates
// are walked chronologically against a local copy of the balance, so a
// two-day remainder on a five-day request yields two paid days then three
// unpaid, without touching the stored balance.
func (l *LedgerServiceImpl) CalculateLeaveUsageForMultipleDays(ctx context.Context, userID string, dates []string, requested attendance.PresenceType) ([]leave.DayUsage, error) {
	for _, date := range dates {
		if _, ok := validator.IsValidDate(date); !ok {
			return nil, validator.ValidationErrors{{
				Field:   "dates",
				Message: "dates must be in YYYY-MM-DD format",
			}}
		}
	}

	balance, err := l.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	ordered := make([]string, len(dates))
	copy(ordered, dates)
	sort.Strings(ordered)

	isLeave := attendance.FamilyOf(requested) == attendance.FamilyLeave
	localRemaining := balance.Remaining
	one := decimal.NewFromInt(1)

	usages := make([]leave.DayUsage, 0, len(ordered))
	for _, date := range ordered {
		var usage leave.Usage
		switch {
		case !isLeave:
			usage = leave.Usage{IsPaidLeave: false, Value: 1}
		case localRemaining.GreaterThanOrEqual(one):
			usage = leave.Usage{IsPaidLeave: true, Value: 1}
			localRemaining = localRemaining.Sub(one)
		default:
			usage = leave.Usage{IsPaidLeave: false, Value: 0}
		}
		usages = append(usages, leave.DayUsage{Date: date, Usage: usage})
	}

	return usages, nil
}

// ApplyApproval implements leave.LedgerService.
func (l *LedgerServiceImpl) ApplyApproval(ctx context.Context, userID string, paidDayCount int) (leave.Balance, error) {
	balance, err := l.GetBalance(ctx, userID)
	if err != nil {
		return leave.Balance{}, err
	}

	if paidDayCount <= 0 {
		return balance, nil
	}

	balance.Used = balance.Used.Add(decimal.NewFromInt(int64(paidDayCount)))
	balance.Remaining = remaining(balance.Earned, balance.Used)
	balance.UpdatedAt = l.clock.Now()

	if err := l.BalanceRepository.Save(ctx, balance); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to save leave balance: %w", err)
	}

	return balance, nil
}

// Reset implements leave.LedgerService.
func (l *LedgerServiceImpl) Reset(ctx context.Context, userID string) error {
	balance, err := l.BalanceRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	balance.Earned = decimal.Zero
	balance.Used = decimal.Zero
	balance.Remaining = decimal.Zero
	balance.LastUpdated = time.Time{}
	balance.UpdatedAt = l.clock.Now()

	if err := l.BalanceRepository.Save(ctx, balance); err != nil {
		return fmt.Errorf("failed to save leave balance: %w", err)
	}

	l.logger.Warn("leave balance reset", "user_id", userID)

	return nil
}

// remaining clamps earned - used at zero; the ledger never goes negative.
func remaining(earned, used decimal.Decimal) decimal.Decimal {
	r := earned.Sub(used)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
