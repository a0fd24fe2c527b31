package dispatcher

import "errors"

// Dispatcher errors. They are logged and counted, never returned to the host.
var (
	// ErrMalformedPlan indicates a plan violates an edit invariant and was dropped.
	ErrMalformedPlan = errors.New("dispatcher: malformed plan")

	// ErrPlanConflict indicates a plan overlaps an earlier one and was dropped.
	ErrPlanConflict = errors.New("dispatcher: conflicting plan")

	// ErrBufferApply indicates the host rejected the transaction.
	ErrBufferApply = errors.New("dispatcher: buffer apply failed")

	// ErrPanic indicates a planner panicked.
	ErrPanic = errors.New("dispatcher: planner panic")
)
