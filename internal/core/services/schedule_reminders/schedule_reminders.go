package schedulereminders

import (
	e "agendareminder/internal/core/domain/errors"
	"agendareminder/internal/core/domain/event"
	"agendareminder/internal/core/domain/logging"
	"agendareminder/internal/core/domain/reminder"
	"agendareminder/internal/core/services"
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Input struct{}

type Result struct {
	RunID            string
	Now              time.Time
	EventsConsidered int
	Planned          int
	Succeeded        int
	Failed           int
	Outcomes         []reminder.Outcome
}

type Settings struct {
	Location    *time.Location
	WindowDays  int
	Offsets     []reminder.Offset
	Concurrency int
}

type service struct {
	log        logging.Logger
	source     event.Source
	dispatcher reminder.Dispatcher
	planner    reminder.Planner
	settings   Settings
	now        func() time.Time
}

func New(
	log logging.Logger,
	source event.Source,
	dispatcher reminder.Dispatcher,
	planner reminder.Planner,
	settings Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if settings.Location == nil {
		panic(e.NewNilArgumentError("settings.Location"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if settings.WindowDays <= 0 {
		panic(e.NewInvalidArgumentError("settings.WindowDays", "must be positive"))
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = 1
	}
	if settings.Offsets == nil {
		settings.Offsets = reminder.DefaultOffsets()
	}
	return &service{
		log:        log,
		source:     source,
		dispatcher: dispatcher,
		planner:    planner,
		settings:   settings,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.RunID = uuid.NewString()
	runEntry := logging.Entry("runID", result.RunID)

	agenda, err := s.source.Load(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, runEntry)
		return result, err
	}

	result.Now = s.now().In(s.settings.Location)
	events := event.Select(agenda.Events, result.Now, s.settings.WindowDays, s.settings.Location)
	result.EventsConsidered = len(events)

	s.log.Info(
		ctx,
		"Got events for reminder scheduling.",
		runEntry,
		logging.Entry("total", len(agenda.Events)),
		logging.Entry("selected", len(events)),
	)

	planner := s.planner
	if agenda.DefaultURL != "" {
		planner.DefaultURL = agenda.DefaultURL
	}

	instructions := make([]reminder.Instruction, 0, len(events)*len(s.settings.Offsets))
	for _, ev := range events {
		instructions = append(instructions, planner.Plan(ev, s.settings.Offsets, result.Now)...)
	}
	result.Planned = len(instructions)

	result.Outcomes = s.dispatchAll(ctx, instructions)
	for _, outcome := range result.Outcomes {
		if outcome.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	s.log.Info(
		ctx,
		"Reminder scheduling finished.",
		runEntry,
		logging.Entry("events", result.EventsConsidered),
		logging.Entry("planned", result.Planned),
		logging.Entry("succeeded", result.Succeeded),
		logging.Entry("failed", result.Failed),
		logging.Entry("now", result.Now.Format(time.RFC3339)),
	)
	return result, nil
}

// dispatchAll submits every instruction, at most Concurrency at a time.
// With a concurrency of one, instructions are dispatched strictly in order.
func (s *service) dispatchAll(ctx context.Context, instructions []reminder.Instruction) []reminder.Outcome {
	outcomes := make([]reminder.Outcome, len(instructions))

	var group errgroup.Group
	group.SetLimit(s.settings.Concurrency)
	for ix, instruction := range instructions {
		ix, instruction := ix, instruction
		group.Go(func() error {
			outcome := s.dispatcher.Dispatch(ctx, instruction)
			s.logOutcome(ctx, instruction, outcome)
			outcomes[ix] = outcome
			return nil
		})
	}
	group.Wait()

	return outcomes
}

func (s *service) logOutcome(ctx context.Context, instruction reminder.Instruction, outcome reminder.Outcome) {
	entries := []logging.LogEntry{
		logging.Entry("key", outcome.Key),
		logging.Entry("sendAt", outcome.SendAt.Format(time.RFC3339)),
		logging.Entry("eventKey", instruction.EventKey),
		logging.Entry("offsetMinutes", instruction.Offset.Minutes()),
	}
	if outcome.Success {
		s.log.Info(ctx, "Reminder has been scheduled.", entries...)
		return
	}
	entries = append(
		entries,
		logging.Entry("status", outcome.StatusCode),
		logging.Entry("response", outcome.ResponseBody),
		logging.Entry("err", outcome.Err),
	)
	s.log.Warning(ctx, "Reminder could not be scheduled.", entries...)
}
