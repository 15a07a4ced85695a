package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingEmbedder implements locqa.Embedder.
var _ locqa.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   locqa.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next locqa.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// EmbedQuery delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) EmbedQuery(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed query",
			"text_bytes", len(text),
			"dims", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedQuery(ctx, text)
}

// EmbedDocument delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) EmbedDocument(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed document",
			"text_bytes", len(text),
			"dims", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedDocument(ctx, text)
}
