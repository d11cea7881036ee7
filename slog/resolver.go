// Package slog provides logging decorators for ankify services. The
// core implementations stay logger-free; observability is layered on
// by wrapping them.
package slog

import (
	"log/slog"

	"github.com/fwojciec/ankify"
)

// Ensure LoggingResolver implements ankify.MediaResolver.
var _ ankify.MediaResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a MediaResolver and reports references that do
// not resolve to a file on disk.
type LoggingResolver struct {
	next   ankify.MediaResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next ankify.MediaResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and warns when the
// referenced media file is missing.
func (r *LoggingResolver) Resolve(ref string) ankify.MediaRef {
	resolved := r.next.Resolve(ref)
	if !resolved.Found {
		r.logger.Warn("missing media file",
			"ref", ref,
			"name", resolved.Name,
		)
	}
	return resolved
}
