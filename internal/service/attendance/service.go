package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.MonthlyAttendanceRepository
	schedule.ProfileRepository
	balanceRepository leave.BalanceRepository
}

func NewAttendanceService(
	monthlyRepo attendance.MonthlyAttendanceRepository,
	profileRepo schedule.ProfileRepository,
	balanceRepo leave.BalanceRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		MonthlyAttendanceRepository: monthlyRepo,
		ProfileRepository:           profileRepo,
		balanceRepository:           balanceRepo,
	}
}

// GetMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthly(ctx context.Context, userID, monthYear string) (attendance.MonthlyAttendanceResponse, error) {
	if validator.IsEmpty(userID) || !validator.IsValidMonthYear(monthYear) {
		return attendance.MonthlyAttendanceResponse{}, validator.ValidationErrors{{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		}}
	}

	doc, err := a.MonthlyAttendanceRepository.GetByUserMonth(ctx, userID, monthYear)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.MonthlyAttendanceResponse{}, err
		}
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to get monthly attendance: %w", err)
	}

	return attendance.ToResponse(doc), nil
}

// UpsertDailyRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpsertDailyRecord(ctx context.Context, req attendance.UpsertDailyRecordRequest) (attendance.MonthlyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	monthYear := req.Date[:7]

	profile, err := a.ProfileRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, schedule.ErrProfileNotFound) {
			return attendance.MonthlyAttendanceResponse{}, err
		}
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to get schedule profile: %w", err)
	}

	balance, err := a.balanceRepository.GetByUserID(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		balance = leave.NewBalance(req.UserID)
	}

	doc, err := a.MonthlyAttendanceRepository.GetByUserMonth(ctx, req.UserID, monthYear)
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to get monthly attendance: %w", err)
		}
		doc = attendance.NewMonthlyAttendance(req.UserID, monthYear)
	}

	record, err := Classify(ClassifyInput{
		Punch:       attendance.RawPunch{CheckIn: req.CheckIn, CheckOut: req.CheckOut},
		Override:    attendance.PresenceType(req.PresenceType),
		FromMachine: req.FromMachine,
		ManualValue: req.Value,
		Remarks:     req.Remarks,
		Profile:     profile,
		Date:        date,
		Balance:     balance,
	})
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	doc.Records[req.Date] = record
	doc.Summary = Aggregate(doc.Records, profile)

	if err := a.MonthlyAttendanceRepository.Save(ctx, doc); err != nil {
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to save monthly attendance: %w", err)
	}

	return attendance.ToResponse(doc), nil
}

// VerifySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) VerifySummary(ctx context.Context, userID, monthYear string) error {
	doc, err := a.MonthlyAttendanceRepository.GetByUserMonth(ctx, userID, monthYear)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to get monthly attendance: %w", err)
	}

	profile, err := a.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, schedule.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("failed to get schedule profile: %w", err)
	}

	if !SummariesEqual(doc.Summary, Aggregate(doc.Records, profile)) {
		return attendance.ErrSummaryDrift
	}

	return nil
}
