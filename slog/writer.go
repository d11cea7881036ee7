package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ankify"
)

// Ensure LoggingWriter implements ankify.DeckWriter.
var _ ankify.DeckWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a DeckWriter with logging.
type LoggingWriter struct {
	next   ankify.DeckWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next ankify.DeckWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteDeck delegates to the wrapped writer, logging deck size and the
// outcome.
func (w *LoggingWriter) WriteDeck(ctx context.Context, deck *ankify.Deck) error {
	begin := time.Now()
	err := w.next.WriteDeck(ctx, deck)
	if err != nil {
		w.logger.Error("write deck",
			"err", err,
			"duration", time.Since(begin),
		)
		return err
	}

	w.logger.Info("write deck",
		"deck", deck.Name,
		"subdecks", len(deck.Subdecks),
		"cards", deck.TotalCards(),
		"media", len(deck.MediaFiles()),
		"duration", time.Since(begin),
	)
	return nil
}
