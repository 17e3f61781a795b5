package dryrundispatcher

import (
	e "agendareminder/internal/core/domain/errors"
	"agendareminder/internal/core/domain/logging"
	"agendareminder/internal/core/domain/reminder"
	"context"
	"time"
)

// Dispatcher logs instructions instead of submitting them.
type Dispatcher struct {
	log logging.Logger
}

func New(log logging.Logger) *Dispatcher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Dispatcher{log: log}
}

func (d *Dispatcher) Dispatch(ctx context.Context, instruction reminder.Instruction) reminder.Outcome {
	d.log.Info(
		ctx,
		"Dry run, reminder is not submitted.",
		logging.Entry("key", instruction.Key),
		logging.Entry("sendAt", instruction.SendAt.Format(time.RFC3339)),
		logging.Entry("title", instruction.Title),
		logging.Entry("message", instruction.Message),
		logging.Entry("url", instruction.URL),
	)
	outcome := reminder.NewOutcome(instruction)
	outcome.Success = true
	return outcome
}
