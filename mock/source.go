package mock

import (
	"context"

	"github.com/fwojciec/ankify"
)

var _ ankify.ExportSource = (*ExportSource)(nil)

// ExportSource is a mock implementation of ankify.ExportSource.
type ExportSource struct {
	ResolveFn func(ctx context.Context) (*ankify.Export, error)
	CloseFn   func() error
}

func (s *ExportSource) Resolve(ctx context.Context) (*ankify.Export, error) {
	return s.ResolveFn(ctx)
}

func (s *ExportSource) Close() error {
	return s.CloseFn()
}
