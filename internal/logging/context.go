package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxLoggerKey carries the command's logger from the cobra root down to
// the subcommands that parse, format and check files.
type ctxLoggerKey struct{}

// WithLogger attaches logger to ctx. A nil ctx starts from Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// FromContext returns the logger attached by WithLogger, falling back to
// Default when ctx is nil or carries none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(ctxLoggerKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}
