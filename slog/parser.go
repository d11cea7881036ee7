package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ankify"
)

// Ensure LoggingParser implements ankify.DeckParser.
var _ ankify.DeckParser = (*LoggingParser)(nil)

// LoggingParser wraps a DeckParser with logging.
type LoggingParser struct {
	next   ankify.DeckParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next ankify.DeckParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseDeck delegates to the wrapped parser, logging what was found.
func (p *LoggingParser) ParseDeck(html string, opts ankify.ParseOptions) (*ankify.Deck, error) {
	begin := time.Now()
	deck, err := p.next.ParseDeck(html, opts)
	if err != nil {
		p.logger.Error("parse deck",
			"err", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}

	p.logger.Info("parse deck",
		"deck", deck.Name,
		"subdecks", len(deck.Subdecks),
		"cards", deck.TotalCards(),
		"duration", time.Since(begin),
	)
	return deck, nil
}
