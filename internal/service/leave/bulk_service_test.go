package leave

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
)

func newBulkFixture(t *testing.T) (*requestFixture, leave.BulkService) {
	t.Helper()
	f, _ := newRequestFixture(t)
	return f, NewBulkService(f.svc, testLogger())
}

func TestBulkApproveSkipsTerminalRequests(t *testing.T) {
	ctx := context.Background()
	f, bulk := newBulkFixture(t)
	f.seedBalance(t, 5)

	first := f.submit(t, string(attendance.PresenceOnLeave))

	second, err := f.svc.Submit(ctx, leave.CreateCorrectionRequest{
		UserID: "u1", Date: "2024-07-11",
		RequestedStatus: string(attendance.PresenceOnLeave), Reason: "sick",
	})
	require.NoError(t, err)

	third, err := f.svc.Submit(ctx, leave.CreateCorrectionRequest{
		UserID: "u1", Date: "2024-07-12",
		RequestedStatus: string(attendance.PresenceWorkFromHome), Reason: "wfh",
	})
	require.NoError(t, err)

	// Decide the first one ahead of the batch.
	_, err = f.svc.Approve(ctx, leave.ApproveRequest{
		ID: first.ID, ApproverID: "mgr-1", ApproverRole: "partner",
	})
	require.NoError(t, err)

	result, err := bulk.BulkApply(ctx, leave.BulkDecisionRequest{
		Action:       leave.BulkActionApprove,
		RequestIDs:   []string{first.ID, second.ID, third.ID},
		ApproverID:   "mgr-1",
		ApproverRole: "partner",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Empty(t, result.Errors)
}

func TestBulkApproveUniformValue(t *testing.T) {
	ctx := context.Background()
	f, bulk := newBulkFixture(t)
	f.seedBalance(t, 5)

	first := f.submit(t, string(attendance.PresenceOnLeave))
	second, err := f.svc.Submit(ctx, leave.CreateCorrectionRequest{
		UserID: "u1", Date: "2024-07-11",
		RequestedStatus: string(attendance.PresenceOnLeave), Reason: "sick",
	})
	require.NoError(t, err)

	value := 0.75
	result, err := bulk.BulkApply(ctx, leave.BulkDecisionRequest{
		Action:       leave.BulkActionApprove,
		RequestIDs:   []string{first.ID, second.ID},
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		Uniform:      &leave.BulkItem{Value: &value, Remark: "half credit"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)

	doc, err := f.attendanceRepo.GetByUserMonth(ctx, "u1", "2024-07")
	require.NoError(t, err)
	for _, date := range []string{"2024-07-10", "2024-07-11"} {
		rec := doc.Records[date]
		assert.Equal(t, 0.75, rec.Value, "date %s", date)
		assert.True(t, rec.HalfDay, "date %s", date)
	}

	// Sub-full overrides never debit the ledger.
	balance, err := f.balanceRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Used.IsZero())
}

func TestBulkApprovePerItemValues(t *testing.T) {
	ctx := context.Background()
	f, bulk := newBulkFixture(t)
	f.seedBalance(t, 5)

	first := f.submit(t, string(attendance.PresenceOnLeave))
	second, err := f.svc.Submit(ctx, leave.CreateCorrectionRequest{
		UserID: "u1", Date: "2024-07-11",
		RequestedStatus: string(attendance.PresenceOnLeave), Reason: "sick",
	})
	require.NoError(t, err)

	half := 0.5
	result, err := bulk.BulkApply(ctx, leave.BulkDecisionRequest{
		Action:       leave.BulkActionApprove,
		RequestIDs:   []string{first.ID, second.ID},
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		PerItem: map[string]leave.BulkItem{
			first.ID: {Value: &half},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)

	doc, err := f.attendanceRepo.GetByUserMonth(ctx, "u1", "2024-07")
	require.NoError(t, err)
	assert.Equal(t, 0.5, doc.Records["2024-07-10"].Value)
	// No per-item entry: classifier decides, paid leave at full value.
	assert.Equal(t, 1.0, doc.Records["2024-07-11"].Value)

	balance, err := f.balanceRepo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Used.Equal(decimal.NewFromInt(1)))
}

func TestBulkRejectCollectsErrors(t *testing.T) {
	ctx := context.Background()
	f, bulk := newBulkFixture(t)

	first := f.submit(t, string(attendance.PresenceOnLeave))

	result, err := bulk.BulkApply(ctx, leave.BulkDecisionRequest{
		Action:       leave.BulkActionReject,
		RequestIDs:   []string{first.ID, "missing-id"},
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		Uniform:      &leave.BulkItem{Remark: "batch closed"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.SkippedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "missing-id", result.Errors[0].RequestID)
}

func TestBulkValidation(t *testing.T) {
	_, bulk := newBulkFixture(t)

	_, err := bulk.BulkApply(context.Background(), leave.BulkDecisionRequest{
		Action:       leave.BulkActionApprove,
		ApproverID:   "hr-1",
		ApproverRole: "hr",
	})
	assert.Error(t, err)

	value := 1.0
	_, err = bulk.BulkApply(context.Background(), leave.BulkDecisionRequest{
		Action:       leave.BulkActionApprove,
		RequestIDs:   []string{"r1"},
		ApproverID:   "hr-1",
		ApproverRole: "hr",
		Uniform:      &leave.BulkItem{Value: &value},
		PerItem:      map[string]leave.BulkItem{"r1": {}},
	})
	assert.Error(t, err)
}
