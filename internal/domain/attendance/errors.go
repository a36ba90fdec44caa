package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("monthly attendance not found")

	// ErrSummaryDrift indicates a stored summary that disagrees with a full
	// recomputation from the records map. It should never occur; seeing it
	// means a caller mutated records without going through the aggregator.
	ErrSummaryDrift = errors.New("stored summary does not match records")
)
