package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes robfig/cron's own messages (skipped runs, recovered
// panics) to slog.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.DebugContext(context.Background(), msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.ErrorContext(context.Background(), msg, append(keysAndValues, "error", err)...)
}
