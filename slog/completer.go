// Package slog provides logging decorators for locqa services using
// the standard structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingCompleter implements locqa.Completer.
var _ locqa.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging.
type LoggingCompleter struct {
	next   locqa.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next locqa.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, opts locqa.CompleteOptions) (reply string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("llm completion",
			"model", opts.Model,
			"prompt_bytes", len(prompt),
			"reply_bytes", len(reply),
			"history", len(opts.History),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, opts)
}
