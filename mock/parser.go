package mock

import "github.com/fwojciec/ankify"

var _ ankify.DeckParser = (*DeckParser)(nil)

// DeckParser is a mock implementation of ankify.DeckParser.
type DeckParser struct {
	ParseDeckFn func(html string, opts ankify.ParseOptions) (*ankify.Deck, error)
}

func (p *DeckParser) ParseDeck(html string, opts ankify.ParseOptions) (*ankify.Deck, error) {
	return p.ParseDeckFn(html, opts)
}
