// Package mock provides hand-written mock implementations of the ankify
// interfaces for use in tests.
package mock

import "github.com/fwojciec/ankify"

var _ ankify.MediaResolver = (*MediaResolver)(nil)

// MediaResolver is a mock implementation of ankify.MediaResolver.
type MediaResolver struct {
	ResolveFn func(ref string) ankify.MediaRef
}

func (r *MediaResolver) Resolve(ref string) ankify.MediaRef {
	return r.ResolveFn(ref)
}
