package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingRetriever implements locqa.Retriever.
var _ locqa.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with debug logging.
type LoggingRetriever struct {
	next   locqa.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next locqa.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Retrieve delegates to the wrapped retriever and logs the operation.
func (r *LoggingRetriever) Retrieve(ctx context.Context, query string, k int) (chunks []locqa.Chunk, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("vector retrieval",
			"query_bytes", len(query),
			"k", k,
			"count", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Retrieve(ctx, query, k)
}
