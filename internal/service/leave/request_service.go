package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/pkg/validator"
	attendanceService "github.com/hrcore/attendance-backend-go/internal/service/attendance"
)

// Notifier delivers decision emails. Failures are logged, never surfaced:
// a request decision must not fail because mail is down.
type Notifier interface {
	NotifyRequestDecision(ctx context.Context, req leave.CorrectionRequest) error
}

type RequestServiceImpl struct {
	leave.CorrectionRequestRepository
	attendanceRepository attendance.MonthlyAttendanceRepository
	profileRepository    schedule.ProfileRepository
	balanceRepository    leave.BalanceRepository
	ledger               leave.LedgerService
	notifier             Notifier
	clock                clock.Clock
	logger               *slog.Logger

	// userLocks serializes decisions per user so two approvals for the same
	// person cannot interleave their read-modify-write on the aggregate and
	// the ledger.
	userLocks sync.Map
}

func NewRequestService(
	requestRepo leave.CorrectionRequestRepository,
	attendanceRepo attendance.MonthlyAttendanceRepository,
	profileRepo schedule.ProfileRepository,
	balanceRepo leave.BalanceRepository,
	ledger leave.LedgerService,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) leave.RequestService {
	return &RequestServiceImpl{
		CorrectionRequestRepository: requestRepo,
		attendanceRepository:        attendanceRepo,
		profileRepository:           profileRepo,
		balanceRepository:           balanceRepo,
		ledger:                      ledger,
		notifier:                    notifier,
		clock:                       clk,
		logger:                      logger,
	}
}

func (r *RequestServiceImpl) lockUser(userID string) func() {
	mu, _ := r.userLocks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Submit implements leave.RequestService.
func (r *RequestServiceImpl) Submit(ctx context.Context, req leave.CreateCorrectionRequest) (leave.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.CorrectionRequest{}, err
	}

	now := r.clock.Now()
	request := leave.CorrectionRequest{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Date:            req.Date,
		RequestedStatus: attendance.PresenceType(req.RequestedStatus),
		Reason:          req.Reason,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          leave.RequestStatusPending,
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Capture what the day looked like before the correction, for audit and
	// for the approver's review screen.
	doc, err := r.attendanceRepository.GetByUserMonth(ctx, req.UserID, request.MonthYear())
	if err == nil {
		if existing, ok := doc.Records[req.Date]; ok {
			request.OriginalStatus = existing.PresenceType
		}
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get monthly attendance: %w", err)
	}

	created, err := r.CorrectionRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	r.logger.Info("correction request submitted",
		"request_id", created.ID,
		"user_id", created.UserID,
		"date", created.Date,
		"requested_status", string(created.RequestedStatus),
	)

	return created, nil
}

// Approve implements leave.RequestService. On approval the requested status
// is written through the classifier, the monthly summary is recomputed, and
// the ledger is debited once when the day lands as paid leave.
func (r *RequestServiceImpl) Approve(ctx context.Context, req leave.ApproveRequest) (leave.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.CorrectionRequest{}, err
	}

	request, err := r.CorrectionRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, leave.ErrRequestNotFound) {
			return leave.CorrectionRequest{}, err
		}
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	unlock := r.lockUser(request.UserID)
	defer unlock()

	// Re-read under the lock; a concurrent decision may have landed first.
	request, err = r.CorrectionRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}
	if request.Status.IsTerminal() {
		return leave.CorrectionRequest{}, leave.ErrRequestAlreadyProcessed
	}

	profile, err := r.profileRepository.GetByUserID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, schedule.ErrProfileNotFound) {
			return leave.CorrectionRequest{}, err
		}
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get schedule profile: %w", err)
	}

	balance, err := r.balanceRepository.GetByUserID(ctx, request.UserID)
	if err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.CorrectionRequest{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		balance = leave.NewBalance(request.UserID)
	}

	doc, err := r.attendanceRepository.GetByUserMonth(ctx, request.UserID, request.MonthYear())
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return leave.CorrectionRequest{}, fmt.Errorf("failed to get monthly attendance: %w", err)
		}
		doc = attendance.NewMonthlyAttendance(request.UserID, request.MonthYear())
	}

	// Paid vs unpaid is decided against the balance as it stands at approval
	// time, before any debit from this request.
	usage := balance.UsageFor(request.RequestedStatus)

	date, _ := validator.IsValidDate(request.Date)
	record, err := attendanceService.Classify(attendanceService.ClassifyInput{
		Punch:       attendance.RawPunch{CheckIn: request.StartTime, CheckOut: request.EndTime},
		Override:    request.RequestedStatus,
		ManualValue: req.Value,
		Remarks:     request.Reason,
		Profile:     profile,
		Date:        date,
		Balance:     balance,
	})
	if err != nil {
		return leave.CorrectionRequest{}, err
	}

	doc.Records[request.Date] = record
	doc.Summary = attendanceService.Aggregate(doc.Records, profile)

	if err := r.attendanceRepository.Save(ctx, doc); err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to save monthly attendance: %w", err)
	}

	paid := attendance.FamilyOf(request.RequestedStatus) == attendance.FamilyLeave
	if paid {
		if req.Value != nil {
			paid = *req.Value >= 1
		} else {
			paid = usage.IsPaidLeave
		}
	}
	if paid {
		if _, err := r.ledger.ApplyApproval(ctx, request.UserID, 1); err != nil {
			return leave.CorrectionRequest{}, fmt.Errorf("failed to debit leave balance: %w", err)
		}
	}

	now := r.clock.Now()
	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &req.ApproverID
	request.ApprovedAt = &now
	request.UpdatedAt = now
	r.setRemarks(&request, leave.ApproverRole(req.ApproverRole), req.Remarks)

	if err := r.CorrectionRequestRepository.Update(ctx, request); err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to update correction request: %w", err)
	}

	r.logger.Info("correction request approved",
		"request_id", request.ID,
		"user_id", request.UserID,
		"date", request.Date,
		"paid_leave", paid,
	)

	r.notify(ctx, request)

	return request, nil
}

// Reject implements leave.RequestService. Rejection records the decision and
// nothing else: attendance and the ledger stay untouched.
func (r *RequestServiceImpl) Reject(ctx context.Context, req leave.RejectRequest) (leave.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.CorrectionRequest{}, err
	}

	request, err := r.CorrectionRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, leave.ErrRequestNotFound) {
			return leave.CorrectionRequest{}, err
		}
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	unlock := r.lockUser(request.UserID)
	defer unlock()

	request, err = r.CorrectionRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}
	if request.Status.IsTerminal() {
		return leave.CorrectionRequest{}, leave.ErrRequestAlreadyProcessed
	}

	now := r.clock.Now()
	request.Status = leave.RequestStatusRejected
	request.RejectedBy = &req.ApproverID
	request.RejectedAt = &now
	request.UpdatedAt = now
	r.setRemarks(&request, leave.ApproverRole(req.ApproverRole), req.Remarks)

	if err := r.CorrectionRequestRepository.Update(ctx, request); err != nil {
		return leave.CorrectionRequest{}, fmt.Errorf("failed to update correction request: %w", err)
	}

	r.logger.Info("correction request rejected",
		"request_id", request.ID,
		"user_id", request.UserID,
		"date", request.Date,
	)

	r.notify(ctx, request)

	return request, nil
}

// ListPending implements leave.RequestService.
func (r *RequestServiceImpl) ListPending(ctx context.Context) ([]leave.CorrectionRequest, error) {
	requests, err := r.CorrectionRequestRepository.ListByStatus(ctx, leave.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending correction requests: %w", err)
	}
	return requests, nil
}

func (r *RequestServiceImpl) setRemarks(request *leave.CorrectionRequest, role leave.ApproverRole, remarks string) {
	if remarks == "" {
		return
	}
	switch role {
	case leave.ApproverRoleHR:
		request.HRRemarks = &remarks
	default:
		request.PartnerRemarks = &remarks
	}
}

func (r *RequestServiceImpl) notify(ctx context.Context, request leave.CorrectionRequest) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyRequestDecision(ctx, request); err != nil {
		r.logger.Warn("failed to send decision notification",
			"request_id", request.ID,
			"error", err,
		)
	}
}
