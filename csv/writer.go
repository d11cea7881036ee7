// Package csv writes flashcard decks as CSV files suitable for
// spreadsheet review or import into tools other than Anki.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/ankify"
)

// Compile-time interface verification.
var _ ankify.DeckWriter = (*Writer)(nil)

// header is the first row of every file this writer produces.
var header = []string{"Deck", "Subdeck", "Front", "Back", "Tags"}

// Writer implements ankify.DeckWriter by writing one row per card.
// Backs are written as raw HTML unless a converter is configured.
type Writer struct {
	path      string
	converter ankify.Converter
}

// Option configures a Writer.
type Option func(*Writer)

// WithConverter converts each card back before writing, typically to
// plain text or Markdown.
func WithConverter(c ankify.Converter) Option {
	return func(w *Writer) {
		w.converter = c
	}
}

// NewWriter creates a Writer that writes to the given path.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{path: path}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteDeck writes deck to the configured path.
func (w *Writer) WriteDeck(ctx context.Context, deck *ankify.Deck) error {
	if deck == nil {
		return ankify.Errorf(ankify.EINVALID, "cannot write a nil deck")
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, sd := range deck.Subdecks {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, card := range sd.Cards {
			back := card.Back
			if w.converter != nil && back != "" {
				back, err = w.converter.Convert(back)
				if err != nil {
					return fmt.Errorf("failed to convert card back: %w", err)
				}
			}

			row := []string{deck.Name, sd.Name, card.Front, back, strings.Join(card.Tags, ", ")}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write card row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return f.Close()
}
