package leave

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
)

type BulkServiceImpl struct {
	requestService leave.RequestService
	logger         *slog.Logger
}

func NewBulkService(requestService leave.RequestService, logger *slog.Logger) leave.BulkService {
	return &BulkServiceImpl{
		requestService: requestService,
		logger:         logger,
	}
}

// BulkApply implements leave.BulkService. Each request is decided
// independently through the same single-request path, so per-request
// invariants (terminal guard, ledger debit, summary recompute) hold
// unchanged. One bad item never aborts the rest: already-decided requests
// are skipped silently, other failures are collected per item.
func (b *BulkServiceImpl) BulkApply(ctx context.Context, req leave.BulkDecisionRequest) (leave.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return leave.BulkResult{}, err
	}

	var result leave.BulkResult
	for _, id := range req.RequestIDs {
		item := b.itemFor(req, id)

		var err error
		switch req.Action {
		case leave.BulkActionApprove:
			_, err = b.requestService.Approve(ctx, leave.ApproveRequest{
				ID:           id,
				ApproverID:   req.ApproverID,
				ApproverRole: req.ApproverRole,
				Remarks:      item.Remark,
				Value:        item.Value,
			})
		case leave.BulkActionReject:
			remark := item.Remark
			if remark == "" {
				remark = "rejected in bulk"
			}
			_, err = b.requestService.Reject(ctx, leave.RejectRequest{
				ID:           id,
				ApproverID:   req.ApproverID,
				ApproverRole: req.ApproverRole,
				Remarks:      remark,
			})
		}

		switch {
		case err == nil:
			result.SuccessCount++
		case errors.Is(err, leave.ErrRequestAlreadyProcessed):
			result.SkippedCount++
		default:
			result.Errors = append(result.Errors, leave.BulkItemError{
				RequestID: id,
				Message:   err.Error(),
			})
		}
	}

	b.logger.Info("bulk decision applied",
		"action", string(req.Action),
		"total", len(req.RequestIDs),
		"succeeded", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", len(result.Errors),
	)

	return result, nil
}

func (b *BulkServiceImpl) itemFor(req leave.BulkDecisionRequest, id string) leave.BulkItem {
	if req.Uniform != nil {
		return *req.Uniform
	}
	if item, ok := req.PerItem[id]; ok {
		return item
	}
	return leave.BulkItem{}
}
