package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of locqa.Embedder.
type Embedder struct {
	EmbedQueryFn    func(ctx context.Context, text string) ([]float32, error)
	EmbedDocumentFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedDocumentFn(ctx, text)
}
