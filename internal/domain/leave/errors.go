package leave

import "errors"

// Leave domain errors
var (
	ErrRequestNotFound         = errors.New("correction request not found")
	ErrRequestAlreadyProcessed = errors.New("correction request has already been approved or rejected")
	ErrBalanceNotFound         = errors.New("leave balance not found")
	ErrNoAttendanceActivity    = errors.New("no attendance activity for accrual month")
)
