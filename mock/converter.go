package mock

import "github.com/fwojciec/locqa"

var _ locqa.Converter = (*Converter)(nil)

// Converter is a mock implementation of locqa.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
