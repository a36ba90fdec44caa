package schedule

import "context"

// ProfileRepository loads user schedule profiles. Profiles are maintained by
// the HR administration surface; the engine only reads them.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}
