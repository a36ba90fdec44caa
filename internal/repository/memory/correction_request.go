package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
)

type CorrectionRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.CorrectionRequest
}

func NewCorrectionRequestRepository() *CorrectionRequestRepository {
	return &CorrectionRequestRepository{
		requests: make(map[string]leave.CorrectionRequest),
	}
}

func (r *CorrectionRequestRepository) GetByID(_ context.Context, id string) (leave.CorrectionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return leave.CorrectionRequest{}, leave.ErrRequestNotFound
	}
	return request, nil
}

func (r *CorrectionRequestRepository) Create(_ context.Context, req leave.CorrectionRequest) (leave.CorrectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.requests[req.ID] = req
	return req, nil
}

func (r *CorrectionRequestRepository) Update(_ context.Context, req leave.CorrectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	r.requests[req.ID] = req
	return nil
}

func (r *CorrectionRequestRepository) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.CorrectionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.CorrectionRequest
	for _, req := range r.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.Before(result[j].SubmittedAt)
	})
	return result, nil
}
