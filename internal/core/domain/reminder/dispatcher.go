package reminder

import "context"

// Dispatcher submits one instruction to the notification service.
// Failures are reported through Outcome, never by panicking or aborting.
type Dispatcher interface {
	Dispatch(ctx context.Context, instruction Instruction) Outcome
}
