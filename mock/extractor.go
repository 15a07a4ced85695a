package mock

import "github.com/fwojciec/locqa"

var _ locqa.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of locqa.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*locqa.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*locqa.ExtractResult, error) {
	return e.ExtractFn(html)
}
