package ankify

// ParseOptions controls deck extraction behavior.
type ParseOptions struct {
	// KeepTags leaves #hashtag tokens in the visible card text. When
	// false the tokens are stripped and the surrounding whitespace
	// collapsed. Tags are collected either way.
	KeepTags bool
}

// DeckParser extracts a deck from a rendered or exported HTML document.
type DeckParser interface {
	// ParseDeck parses HTML and returns the extracted deck. A document
	// without recognizable flashcard structure yields an empty deck, not
	// an error; callers decide whether zero cards is fatal.
	ParseDeck(html string, opts ParseOptions) (*Deck, error)
}
