package mock

import "github.com/fwojciec/ldblocks"

var _ ldblocks.Converter = (*Converter)(nil)

// Converter is a mock implementation of ldblocks.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
