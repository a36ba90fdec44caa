// Package memory provides in-memory repository implementations used by the
// test suite and by local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hrcore/attendance-backend-go/internal/domain/schedule"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]schedule.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]schedule.Profile),
	}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (schedule.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return schedule.Profile{}, schedule.ErrProfileNotFound
	}
	return profile, nil
}

func (r *ProfileRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Put seeds or replaces a profile. Not part of the domain interface; profiles
// are owned by an upstream HR system in production.
func (r *ProfileRepository) Put(profile schedule.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
}
