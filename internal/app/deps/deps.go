package deps

import (
	"agendareminder/internal/config"
	"agendareminder/internal/core/domain/event"
	dl "agendareminder/internal/core/domain/logging"
	"agendareminder/internal/core/domain/reminder"
	agendaloader "agendareminder/internal/implementations/agenda_loader"
	dryrundispatcher "agendareminder/internal/implementations/dry_run_dispatcher"
	"agendareminder/internal/implementations/logging"
	"agendareminder/internal/implementations/onesignal"
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

type Deps struct {
	Config   *config.Config
	Location *time.Location
	Logger   dl.Logger

	Now func() time.Time

	AgendaSource event.Source
	Dispatcher   reminder.Dispatcher
	Planner      reminder.Planner
	Offsets      []reminder.Offset
}

// InitDeps builds every dependency of a scheduling run. A configuration
// error is returned before anything else is initialized.
func InitDeps() (*Deps, func(), error) {
	deps := &Deps{}

	if err := deps.initConfig(); err != nil {
		return nil, nil, err
	}

	closeLogger, err := deps.initLogger()
	if err != nil {
		return nil, nil, err
	}
	flushSentry, err := deps.initSentry()
	if err != nil {
		closeLogger()
		return nil, nil, err
	}
	shutdown := func() {
		flushSentry()
		closeLogger()
	}

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.Offsets = reminder.DefaultOffsets()
	if err := deps.initPlanner(); err != nil {
		shutdown()
		return nil, nil, err
	}

	if err := deps.initAgendaSource(); err != nil {
		shutdown()
		return nil, nil, err
	}
	if err := deps.initDispatcher(); err != nil {
		shutdown()
		return nil, nil, err
	}

	return deps, shutdown, nil
}

func (deps *Deps) initConfig() error {
	config, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := config.Location()
	if err != nil {
		return err
	}
	deps.Config = config
	deps.Location = loc
	return nil
}

func (deps *Deps) initLogger() (func(), error) {
	logger, err := logging.NewZapLogger(deps.Config.LogLevel)
	if err != nil {
		return nil, err
	}
	deps.Logger = logger
	return func() { logger.Sync() }, nil
}

func (deps *Deps) initSentry() (func(), error) {
	if deps.Config.SentryDsn == "" {
		deps.Logger.Info(context.Background(), "Sentry is disabled.")
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{Dsn: deps.Config.SentryDsn})
	if err != nil {
		return nil, fmt.Errorf("could not init Sentry: %w", err)
	}
	deps.Logger = logging.NewSentryLogger(deps.Logger, sentry.CurrentHub())
	deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
	return func() {
		ok := sentry.Flush(5 * time.Second)
		deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
	}, nil
}

func (deps *Deps) initPlanner() error {
	deps.Planner = reminder.NewPlanner(deps.Config.SiteURL)
	if len(deps.Config.WeekdayNames) == 0 {
		return nil
	}
	weekdays, err := reminder.NewWeekdays(deps.Config.WeekdayNames)
	if err != nil {
		return err
	}
	deps.Planner.Weekdays = weekdays
	return nil
}

func (deps *Deps) initAgendaSource() error {
	loader, err := agendaloader.New(deps.Logger, deps.Config.AgendaPath, deps.Location)
	if err != nil {
		return err
	}
	deps.AgendaSource = loader
	return nil
}

func (deps *Deps) initDispatcher() error {
	if deps.Config.DryRun {
		deps.Logger.Info(context.Background(), "Dry run is enabled, reminders will not be submitted.")
		deps.Dispatcher = dryrundispatcher.New(deps.Logger)
		return nil
	}

	client, err := onesignal.New(
		deps.Logger,
		deps.Config.OneSignalAPIURL,
		deps.Config.OneSignalAppID,
		deps.Config.OneSignalRestAPIKey,
		deps.Config.RequestTimeout,
		deps.Config.DispatchRatePerSecond,
	)
	if err != nil {
		return err
	}
	deps.Dispatcher = client
	return nil
}
