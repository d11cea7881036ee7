package ankify

import "context"

// DeckWriter serializes an extracted deck to an output artifact.
type DeckWriter interface {
	WriteDeck(ctx context.Context, deck *Deck) error
}
