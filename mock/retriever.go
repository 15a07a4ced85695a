package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of locqa.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, k int) ([]locqa.Chunk, error)
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]locqa.Chunk, error) {
	return r.RetrieveFn(ctx, query, k)
}
