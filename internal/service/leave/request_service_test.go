package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
	"github.com/hrcore/attendance-backend-go/internal/pkg/clock"
	"github.com/hrcore/attendance-backend-go/internal/repository/memory"
)

type requestFixture struct {
	svc            leave.RequestService
	ledger         leave.LedgerService
	requestRepo    *memory.CorrectionRequestRepository
	attendanceRepo *memory.MonthlyAttendanceRepository
	balanceRepo    *memory.BalanceRepository
	profileRepo    *memory.ProfileRepository
}

type recordingNotifier struct {
	decided []leave.CorrectionRequest
}

func (n *recordingNotifier) NotifyRequestDecision(_ context.Context, req leave.CorrectionRequest) error {
	n.decided = append(n.decided, req)
	return nil
}

func newRequestFixture(t *testing.T) (*requestFixture, *recordingNotifier) {
	t.Helper()

	requestRepo := memory.NewCorrectionRequestRepository()
	attendanceRepo := memory.NewMonthlyAttendanceRepository()
	balanceRepo := memory.NewBalanceRepository()
	profileRepo := memory.NewProfileRepository()

	profileRepo.Put(schedule.Profile{
		UserID:      "u1",
		FullName:    "Asha Verma",
		Designation: schedule.DesignationRegular,
		Regular:     &schedule.Window{In: "09:00", Out: "18:00"},
	})

	fixed := clock.Fixed(time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC))
	logger := testLogger()
	ledger := NewLedgerService(balanceRepo, attendanceRepo, fixed, logger)
	notifier := &recordingNotifier{}
	svc := NewRequestService(requestRepo, attendanceRepo, profileRepo, balanceRepo, ledger, notifier, fixed, logger)

	return &requestFixture{
		svc:            svc,
		ledger:         ledger,
		requestRepo:    requestRepo,
		attendanceRepo: attendanceRepo,
		balanceRepo:    balanceRepo,
		profileRepo:    profileRepo,
	}, notifier
}

func (f *requestFixture) seedBalance(t *testing.T, remaining int64) {
	t.Helper()
	b := leave.NewBalance("u1")
	b.Earned = decimal.NewFromInt(remaining)
	b.Remaining = decimal.NewFromInt(remaining)
	require.NoError(t, f.balanceRepo.Save(context.Background(), b))
}

func (f *requestFixture) submit(t *testing.T, requestedStatus string) leave.CorrectionRequest {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), leave.CreateCorrectionRequest{
		UserID:          "u1",
		Date:            "2024-07-10",
		RequestedStatus: requestedStatus,
		Reason:          "forgot to punch",
	})
	require.NoError(t, err)
	return req
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f, _ := newRequestFixture(t)

	// An existing record for the date becomes the request's original status.
	doc := attendance.NewMonthlyAttendance("u1", "2024-07")
	doc.Records["2024-07-10"] = attendance.DailyRecord{PresenceType: attendance.PresenceAbsent}
	require.NoError(t, f.attendanceRepo.Save(context.Background(), doc))

	req := f.submit(t, string(attendance.PresenceWorkFromHome))

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, leave.RequestStatusPending, req.Status)
	assert.Equal(t, attendance.PresenceAbsent, req.OriginalStatus)
	assert.False(t, req.SubmittedAt.IsZero())
}

func TestSubmitValidation(t *testing.T) {
	f, _ := newRequestFixture(t)

	_, err := f.svc.Submit(context.Background(), leave.CreateCorrectionRequest{
		UserID: "u1",
		Date:   "not-a-date",
	})
	assert.Error(t, err)
}

func TestApprovePaidLeaveDebitsOnce(t *testing.T) {
	f, notifier := newRequestFixture(t)
	f.seedBalance(t, 2)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	approved, err := f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           req.ID,
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
		Remarks:      "ok",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr-1", *approved.ApprovedBy)
	require.NotNil(t, approved.PartnerRemarks)
	assert.Equal(t, "ok", *approved.PartnerRemarks)

	// The day was written through the classifier with value 1 (paid).
	doc, err := f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	require.NoError(t, err)
	rec := doc.Records["2024-07-10"]
	assert.Equal(t, attendance.PresenceOnLeave, rec.PresenceType)
	assert.Equal(t, 1.0, rec.Value)
	assert.Equal(t, 1, doc.Summary.TotalLeave)

	// Exactly one day debited.
	balance, err := f.balanceRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, balance.Used.Equal(decimal.NewFromInt(1)))
	assert.True(t, balance.Remaining.Equal(decimal.NewFromInt(1)))

	require.Len(t, notifier.decided, 1)
}

func TestApproveUnpaidLeaveLeavesBalanceAlone(t *testing.T) {
	f, _ := newRequestFixture(t)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	_, err := f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           req.ID,
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
	})
	require.NoError(t, err)

	// No balance existed, so the day is unpaid and nothing is debited.
	doc, err := f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	require.NoError(t, err)
	assert.Equal(t, 0.0, doc.Records["2024-07-10"].Value)

	_, err = f.balanceRepo.GetByUserID(context.Background(), "u1")
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestApproveWithValueOverride(t *testing.T) {
	f, _ := newRequestFixture(t)
	f.seedBalance(t, 2)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	value := 0.75
	_, err := f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           req.ID,
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		Value:        &value,
	})
	require.NoError(t, err)

	doc, err := f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	require.NoError(t, err)
	rec := doc.Records["2024-07-10"]
	assert.Equal(t, 0.75, rec.Value)
	assert.True(t, rec.HalfDay)

	// An override below a full day is not a paid leave day.
	balance, err := f.balanceRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, balance.Used.IsZero())
}

func TestApproveTerminalRequestIsImmutable(t *testing.T) {
	f, _ := newRequestFixture(t)
	f.seedBalance(t, 2)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	_, err := f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           req.ID,
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
	})
	require.NoError(t, err)

	docBefore, err := f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	require.NoError(t, err)
	balanceBefore, err := f.balanceRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)

	// Retrying the approval is rejected and has no side effects.
	_, err = f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           req.ID,
		ApproverID:   "mgr-2",
		ApproverRole: "partner",
	})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)

	docAfter, err := f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	require.NoError(t, err)
	assert.Equal(t, docBefore.Summary, docAfter.Summary)
	assert.Equal(t, docBefore.Records, docAfter.Records)

	balanceAfter, err := f.balanceRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, balanceBefore.Used.Equal(balanceAfter.Used))
	assert.True(t, balanceBefore.Remaining.Equal(balanceAfter.Remaining))
}

func TestRejectRecordsDecisionOnly(t *testing.T) {
	f, notifier := newRequestFixture(t)
	f.seedBalance(t, 2)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	rejected, err := f.svc.Reject(context.Background(), leave.RejectRequest{
		ID:           req.ID,
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		Remarks:      "no supporting document",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.HRRemarks)
	assert.Equal(t, "no supporting document", *rejected.HRRemarks)
	require.NotNil(t, rejected.RejectedBy)
	assert.Equal(t, "hr-1", *rejected.RejectedBy)

	// Attendance is untouched: no aggregate was ever created.
	_, err = f.attendanceRepo.GetByUserMonth(context.Background(), "u1", "2024-07")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	// Ledger untouched.
	balance, err := f.balanceRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, balance.Used.IsZero())

	require.Len(t, notifier.decided, 1)
}

func TestRejectRequiresRemarks(t *testing.T) {
	f, _ := newRequestFixture(t)
	req := f.submit(t, string(attendance.PresenceOnLeave))

	_, err := f.svc.Reject(context.Background(), leave.RejectRequest{
		ID:           req.ID,
		ApproverID:   "hr-1",
		ApproverRole: "hr",
	})
	assert.Error(t, err)
}

func TestListPending(t *testing.T) {
	f, _ := newRequestFixture(t)
	f.seedBalance(t, 2)

	first := f.submit(t, string(attendance.PresenceOnLeave))

	second, err := f.svc.Submit(context.Background(), leave.CreateCorrectionRequest{
		UserID:          "u1",
		Date:            "2024-07-11",
		RequestedStatus: string(attendance.PresenceWorkFromHome),
		Reason:          "worked from home",
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           first.ID,
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
	})
	require.NoError(t, err)

	pending, err := f.svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestApproveUnknownRequest(t *testing.T) {
	f, _ := newRequestFixture(t)

	_, err := f.svc.Approve(context.Background(), leave.ApproveRequest{
		ID:           "missing",
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
	})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}
