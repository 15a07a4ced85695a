package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Completer = (*Completer)(nil)

// Completer is a mock implementation of locqa.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}
