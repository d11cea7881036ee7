package mock

import "github.com/fwojciec/ankify"

var _ ankify.Converter = (*Converter)(nil)

// Converter is a mock implementation of ankify.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
