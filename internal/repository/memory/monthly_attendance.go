package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hrcore/attendance-backend-go/internal/domain/attendance"
)

type monthKey struct {
	UserID    string
	MonthYear string
}

type MonthlyAttendanceRepository struct {
	mu   sync.RWMutex
	docs map[monthKey]attendance.MonthlyAttendance
}

func NewMonthlyAttendanceRepository() *MonthlyAttendanceRepository {
	return &MonthlyAttendanceRepository{
		docs: make(map[monthKey]attendance.MonthlyAttendance),
	}
}

func (r *MonthlyAttendanceRepository) GetByUserMonth(_ context.Context, userID, monthYear string) (attendance.MonthlyAttendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[monthKey{UserID: userID, MonthYear: monthYear}]
	if !ok {
		return attendance.MonthlyAttendance{}, attendance.ErrAttendanceNotFound
	}
	return copyDoc(doc), nil
}

func (r *MonthlyAttendanceRepository) Save(_ context.Context, doc attendance.MonthlyAttendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	r.docs[monthKey{UserID: doc.UserID, MonthYear: doc.MonthYear}] = copyDoc(doc)
	return nil
}

func (r *MonthlyAttendanceRepository) ListUserIDsForMonth(_ context.Context, monthYear string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for k, doc := range r.docs {
		if k.MonthYear == monthYear && len(doc.Records) > 0 {
			ids = append(ids, k.UserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// copyDoc detaches the records map so callers cannot mutate stored state
// through a returned aggregate.
func copyDoc(doc attendance.MonthlyAttendance) attendance.MonthlyAttendance {
	records := make(map[string]attendance.DailyRecord, len(doc.Records))
	for date, rec := range doc.Records {
		records[date] = rec
	}
	doc.Records = records
	return doc
}
