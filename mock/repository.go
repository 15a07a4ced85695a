package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.CodeRepository = (*CodeRepository)(nil)

// CodeRepository is a mock implementation of locqa.CodeRepository.
type CodeRepository struct {
	ListFilesFn func(ctx context.Context) ([]string, error)
	ReadFileFn  func(ctx context.Context, path string) (string, error)
}

func (r *CodeRepository) ListFiles(ctx context.Context) ([]string, error) {
	return r.ListFilesFn(ctx)
}

func (r *CodeRepository) ReadFile(ctx context.Context, path string) (string, error) {
	return r.ReadFileFn(ctx, path)
}
