package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
	"github.com/hrcore/attendance-backend-go/internal/pkg/database"
)

type correctionRequestRepositoryImpl struct {
	db *database.DB
}

func NewCorrectionRequestRepository(db *database.DB) leave.CorrectionRequestRepository {
	return &correctionRequestRepositoryImpl{db: db}
}

const correctionRequestColumns = `
	cr.id, cr.user_id, cr.date, cr.requested_status, cr.original_status,
	cr.reason, cr.start_time, cr.end_time, cr.status,
	cr.partner_remarks, cr.hr_remarks,
	cr.approved_by, cr.approved_at, cr.rejected_by, cr.rejected_at,
	cr.submitted_at, cr.created_at, cr.updated_at
`

func scanCorrectionRequest(row pgx.Row) (leave.CorrectionRequest, error) {
	var req leave.CorrectionRequest
	var startTime, endTime *string
	err := row.Scan(
		&req.ID, &req.UserID, &req.Date, &req.RequestedStatus, &req.OriginalStatus,
		&req.Reason, &startTime, &endTime, &req.Status,
		&req.PartnerRemarks, &req.HRRemarks,
		&req.ApprovedBy, &req.ApprovedAt, &req.RejectedBy, &req.RejectedAt,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return leave.CorrectionRequest{}, err
	}
	if startTime != nil {
		req.StartTime = *startTime
	}
	if endTime != nil {
		req.EndTime = *endTime
	}
	return req, nil
}

// GetByID implements leave.CorrectionRequestRepository.
func (r *correctionRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionRequestColumns + `
		FROM correction_requests cr
		WHERE cr.id = $1
	`

	req, err := scanCorrectionRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.CorrectionRequest{}, leave.ErrRequestNotFound
		}
		return leave.CorrectionRequest{}, err
	}

	return req, nil
}

// Create implements leave.CorrectionRequestRepository.
func (r *correctionRequestRepositoryImpl) Create(ctx context.Context, req leave.CorrectionRequest) (leave.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO correction_requests (
			id, user_id, date, requested_status, original_status,
			reason, start_time, end_time, status, submitted_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, NOW(), NOW())
	`
	_, err := q.Exec(ctx, query,
		req.ID, req.UserID, req.Date, req.RequestedStatus, req.OriginalStatus,
		req.Reason, req.StartTime, req.EndTime, req.Status, req.SubmittedAt,
	)
	if err != nil {
		return leave.CorrectionRequest{}, err
	}

	return req, nil
}

// Update implements leave.CorrectionRequestRepository.
func (r *correctionRequestRepositoryImpl) Update(ctx context.Context, req leave.CorrectionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE correction_requests
		SET status = $2,
			partner_remarks = $3,
			hr_remarks = $4,
			approved_by = $5,
			approved_at = $6,
			rejected_by = $7,
			rejected_at = $8,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		req.ID, req.Status,
		req.PartnerRemarks, req.HRRemarks,
		req.ApprovedBy, req.ApprovedAt, req.RejectedBy, req.RejectedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// ListByStatus implements leave.CorrectionRequestRepository.
func (r *correctionRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionRequestColumns + `, p.full_name AS user_name
		FROM correction_requests cr
		LEFT JOIN schedule_profiles p ON p.user_id = cr.user_id
		WHERE cr.status = $1
		ORDER BY cr.submitted_at
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.CorrectionRequest, 0)
	for rows.Next() {
		var req leave.CorrectionRequest
		var startTime, endTime *string
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.Date, &req.RequestedStatus, &req.OriginalStatus,
			&req.Reason, &startTime, &endTime, &req.Status,
			&req.PartnerRemarks, &req.HRRemarks,
			&req.ApprovedBy, &req.ApprovedAt, &req.RejectedBy, &req.RejectedAt,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.UserName,
		); err != nil {
			return nil, err
		}
		if startTime != nil {
			req.StartTime = *startTime
		}
		if endTime != nil {
			req.EndTime = *endTime
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
