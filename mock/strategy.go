package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of locqa.Strategy.
type Strategy struct {
	RetrieveFn func(ctx context.Context, query string, seen map[string]bool) (locqa.StrategyResult, error)
}

func (s *Strategy) Retrieve(ctx context.Context, query string, seen map[string]bool) (locqa.StrategyResult, error) {
	return s.RetrieveFn(ctx, query, seen)
}
