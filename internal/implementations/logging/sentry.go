package logging

import (
	e "agendareminder/internal/core/domain/errors"
	"agendareminder/internal/core/domain/logging"
	"context"

	"github.com/getsentry/sentry-go"
)

// SentryLogger forwards error records to Sentry and delegates every record
// to the wrapped logger.
type SentryLogger struct {
	logging.Logger
	hub *sentry.Hub
}

func NewSentryLogger(log logging.Logger, hub *sentry.Hub) *SentryLogger {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if hub == nil {
		panic(e.NewNilArgumentError("hub"))
	}
	return &SentryLogger{Logger: log, hub: hub}
}

func (l *SentryLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.Logger.Error(ctx, msg, entries...)

	l.hub.WithScope(func(scope *sentry.Scope) {
		var cause error
		for _, entry := range entries {
			if err, ok := entry.Value.(error); ok && cause == nil {
				cause = err
				continue
			}
			scope.SetExtra(entry.Key, entry.Value)
		}
		if cause != nil {
			l.hub.CaptureException(cause)
			return
		}
		l.hub.CaptureMessage(msg)
	})
}
