package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingStrategy implements locqa.Strategy.
var _ locqa.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a retrieval Strategy with debug logging.
type LoggingStrategy struct {
	next   locqa.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next locqa.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Retrieve delegates to the wrapped strategy and logs the operation.
func (s *LoggingStrategy) Retrieve(ctx context.Context, query string, seen map[string]bool) (result locqa.StrategyResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("context retrieval",
			"query_bytes", len(query),
			"seen", len(seen),
			"count", len(result.Items),
			"sufficient", result.Sufficient,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Retrieve(ctx, query, seen)
}
