package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ankify"
)

// Ensure LoggingSource implements ankify.ExportSource.
var _ ankify.ExportSource = (*LoggingSource)(nil)

// LoggingSource wraps an ExportSource with logging.
type LoggingSource struct {
	next   ankify.ExportSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next ankify.ExportSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Resolve delegates to the wrapped source, logging the outcome.
func (s *LoggingSource) Resolve(ctx context.Context) (*ankify.Export, error) {
	begin := time.Now()
	export, err := s.next.Resolve(ctx)
	if err != nil {
		s.logger.Error("resolve export",
			"err", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	s.logger.Info("resolve export",
		"html", export.HTMLPath,
		"assets", export.AssetsDir,
		"duration", time.Since(begin),
	)
	return export, nil
}

// Close delegates to the wrapped source.
func (s *LoggingSource) Close() error {
	return s.next.Close()
}
