package mock

import (
	"context"

	"github.com/fwojciec/ankify"
)

var _ ankify.DeckWriter = (*DeckWriter)(nil)

// DeckWriter is a mock implementation of ankify.DeckWriter.
type DeckWriter struct {
	WriteDeckFn func(ctx context.Context, deck *ankify.Deck) error
}

func (w *DeckWriter) WriteDeck(ctx context.Context, deck *ankify.Deck) error {
	return w.WriteDeckFn(ctx, deck)
}
