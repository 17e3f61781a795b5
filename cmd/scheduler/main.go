package main

import (
	"agendareminder/internal/app/deps"
	"agendareminder/internal/app/services"
	"agendareminder/internal/core/domain/logging"
	schedulereminders "agendareminder/internal/core/services/schedule_reminders"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	deps, shutdownDeps, err := deps.InitDeps()
	if err != nil {
		reportInitError(err, zap.NewProduction, os.Stderr)
		return 1
	}
	defer shutdownDeps()
	log := deps.Logger

	services := services.InitServices(deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Launching reminders scheduling service.", logging.Entry("dryRun", deps.Config.DryRun))
	result, err := services.ScheduleReminders.Run(ctx, schedulereminders.Input{})
	if err != nil {
		log.Error(ctx, "Scheduling service returned an error.", logging.Entry("err", err))
		return 1
	}
	if result.Failed > 0 {
		log.Warning(
			ctx,
			"Some reminders were not scheduled.",
			logging.Entry("failed", result.Failed),
			logging.Entry("succeeded", result.Succeeded),
		)
	}
	return 0
}

// reportInitError logs err with a bootstrap logger, since the configured one
// may not exist yet. Falls back to plain text on w.
func reportInitError(err error, build func(...zap.Option) (*zap.Logger, error), w io.Writer) {
	bootstrap, buildErr := build()
	if buildErr != nil {
		fmt.Fprintln(w, "Could not initialize dependencies:", err)
		return
	}
	bootstrap.Sugar().Errorw("Could not initialize dependencies.", "err", err)
	bootstrap.Sync()
}
