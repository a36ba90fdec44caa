package schedule

import "errors"

var (
	ErrProfileNotFound = errors.New("schedule profile not found")
)
