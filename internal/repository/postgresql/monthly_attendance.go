package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
	"github.com/hrcore/attendance-backend-go/internal/pkg/database"
)

type monthlyAttendanceRepositoryImpl struct {
	db *database.DB
}

func NewMonthlyAttendanceRepository(db *database.DB) attendance.MonthlyAttendanceRepository {
	return &monthlyAttendanceRepositoryImpl{db: db}
}

// dailyRecordRow is the JSONB shape of one day inside the records column.
type dailyRecordRow struct {
	CheckIn      string  `json:"check_in,omitempty"`
	CheckOut     string  `json:"check_out,omitempty"`
	TotalHour    float64 `json:"total_hour"`
	ExcessHour   float64 `json:"excess_hour"`
	PresenceType string  `json:"presence_type"`
	HalfDay      bool    `json:"half_day"`
	Value        float64 `json:"value"`
	Remarks      string  `json:"remarks,omitempty"`
}

// GetByUserMonth implements attendance.MonthlyAttendanceRepository.
func (r *monthlyAttendanceRepositoryImpl) GetByUserMonth(ctx context.Context, userID, monthYear string) (attendance.MonthlyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, month_year, records, created_at, updated_at
		FROM monthly_attendances
		WHERE user_id = $1 AND month_year = $2
	`

	var doc attendance.MonthlyAttendance
	var recordsJSON []byte
	err := q.QueryRow(ctx, query, userID, monthYear).Scan(
		&doc.ID, &doc.UserID, &doc.MonthYear, &recordsJSON,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlyAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.MonthlyAttendance{}, err
	}

	rows := make(map[string]dailyRecordRow)
	if err := json.Unmarshal(recordsJSON, &rows); err != nil {
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to decode records: %w", err)
	}

	doc.Records = make(map[string]attendance.DailyRecord, len(rows))
	for date, row := range rows {
		doc.Records[date] = attendance.DailyRecord{
			CheckIn:      row.CheckIn,
			CheckOut:     row.CheckOut,
			TotalHour:    row.TotalHour,
			ExcessHour:   row.ExcessHour,
			PresenceType: attendance.PresenceType(row.PresenceType),
			HalfDay:      row.HalfDay,
			Value:        row.Value,
			Remarks:      row.Remarks,
		}
	}

	// The summary is derived state; recomputing on read would need the
	// schedule profile, so it is stored alongside the records and read back
	// as-is.
	summaryQuery := `
		SELECT total_hour, total_late_arrival, excess_hour, total_half_day,
			   total_present, total_absent, total_leave
		FROM monthly_attendance_summaries
		WHERE monthly_attendance_id = $1
	`
	err = q.QueryRow(ctx, summaryQuery, doc.ID).Scan(
		&doc.Summary.TotalHour, &doc.Summary.TotalLateArrival, &doc.Summary.ExcessHour,
		&doc.Summary.TotalHalfDay, &doc.Summary.TotalPresent, &doc.Summary.TotalAbsent,
		&doc.Summary.TotalLeave,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.MonthlyAttendance{}, err
	}

	return doc, nil
}

// Save implements attendance.MonthlyAttendanceRepository. Records and summary
// are written in one transaction so readers never observe them out of sync.
func (r *monthlyAttendanceRepositoryImpl) Save(ctx context.Context, doc attendance.MonthlyAttendance) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	rows := make(map[string]dailyRecordRow, len(doc.Records))
	for date, rec := range doc.Records {
		rows[date] = dailyRecordRow{
			CheckIn:      rec.CheckIn,
			CheckOut:     rec.CheckOut,
			TotalHour:    rec.TotalHour,
			ExcessHour:   rec.ExcessHour,
			PresenceType: string(rec.PresenceType),
			HalfDay:      rec.HalfDay,
			Value:        rec.Value,
			Remarks:      rec.Remarks,
		}
	}
	recordsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		docQuery := `
			INSERT INTO monthly_attendances (id, user_id, month_year, records, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			ON CONFLICT (user_id, month_year)
			DO UPDATE SET records = EXCLUDED.records, updated_at = NOW()
			RETURNING id
		`
		if err := q.QueryRow(txCtx, docQuery, doc.ID, doc.UserID, doc.MonthYear, recordsJSON).Scan(&doc.ID); err != nil {
			return err
		}

		summaryQuery := `
			INSERT INTO monthly_attendance_summaries (
				monthly_attendance_id, total_hour, total_late_arrival, excess_hour,
				total_half_day, total_present, total_absent, total_leave, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			ON CONFLICT (monthly_attendance_id)
			DO UPDATE SET
				total_hour = EXCLUDED.total_hour,
				total_late_arrival = EXCLUDED.total_late_arrival,
				excess_hour = EXCLUDED.excess_hour,
				total_half_day = EXCLUDED.total_half_day,
				total_present = EXCLUDED.total_present,
				total_absent = EXCLUDED.total_absent,
				total_leave = EXCLUDED.total_leave,
				updated_at = NOW()
		`
		_, err := q.Exec(txCtx, summaryQuery,
			doc.ID, doc.Summary.TotalHour, doc.Summary.TotalLateArrival, doc.Summary.ExcessHour,
			doc.Summary.TotalHalfDay, doc.Summary.TotalPresent, doc.Summary.TotalAbsent,
			doc.Summary.TotalLeave,
		)
		return err
	})
}

// ListUserIDsForMonth implements attendance.MonthlyAttendanceRepository.
func (r *monthlyAttendanceRepositoryImpl) ListUserIDsForMonth(ctx context.Context, monthYear string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id
		FROM monthly_attendances
		WHERE month_year = $1 AND records <> '{}'::jsonb
		ORDER BY user_id
	`

	rows, err := q.Query(ctx, query, monthYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
