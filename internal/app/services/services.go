package services

import (
	"agendareminder/internal/app/deps"
	"agendareminder/internal/core/services"
	schedulereminders "agendareminder/internal/core/services/schedule_reminders"
)

type Services struct {
	ScheduleReminders services.Service[schedulereminders.Input, schedulereminders.Result]
}

func InitServices(deps *deps.Deps) *Services {
	return &Services{
		ScheduleReminders: schedulereminders.New(
			deps.Logger,
			deps.AgendaSource,
			deps.Dispatcher,
			deps.Planner,
			schedulereminders.Settings{
				Location:    deps.Location,
				WindowDays:  deps.Config.WindowDays,
				Offsets:     deps.Offsets,
				Concurrency: deps.Config.DispatchConcurrency,
			},
			deps.Now,
		),
	}
}
