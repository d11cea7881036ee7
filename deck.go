package ankify

const (
	// DefaultDeckName is used when the export has no top-level heading.
	DefaultDeckName = "Notion Deck"

	// DefaultSubdeckName is the reserved subdeck holding cards found
	// outside any collapsible section.
	DefaultSubdeckName = "Default"
)

// Subdeck is a named group of cards within a deck. Cards appear in source
// document order.
type Subdeck struct {
	Name  string
	Cards []*Card
}

// Deck is the extracted model of one Notion export: a name, an ordered
// collection of subdecks and the stylesheet text found in the document.
// Subdecks keep the order their introducing elements first appeared in
// the source.
type Deck struct {
	Name       string
	Subdecks   []*Subdeck
	Stylesheet string

	index map[string]*Subdeck
}

// NewDeck creates an empty deck. An empty name falls back to
// DefaultDeckName.
func NewDeck(name string) *Deck {
	if name == "" {
		name = DefaultDeckName
	}
	return &Deck{
		Name:  name,
		index: make(map[string]*Subdeck),
	}
}

// EnsureSubdeck returns the subdeck with the given name, creating and
// appending it on first use. Repeated names reuse the existing subdeck, so
// a section label appearing twice in the document keeps a single card list.
func (d *Deck) EnsureSubdeck(name string) *Subdeck {
	if d.index == nil {
		d.index = make(map[string]*Subdeck, len(d.Subdecks))
		for _, sub := range d.Subdecks {
			d.index[sub.Name] = sub
		}
	}
	if sub, ok := d.index[name]; ok {
		return sub
	}
	sub := &Subdeck{Name: name}
	d.index[name] = sub
	d.Subdecks = append(d.Subdecks, sub)
	return sub
}

// AddCard appends card to the named subdeck, creating the subdeck on
// first use.
func (d *Deck) AddCard(subdeck string, card *Card) {
	sub := d.EnsureSubdeck(subdeck)
	sub.Cards = append(sub.Cards, card)
}

// TotalCards returns the number of cards across all subdecks.
func (d *Deck) TotalCards() int {
	n := 0
	for _, sub := range d.Subdecks {
		n += len(sub.Cards)
	}
	return n
}

// MediaFiles returns the unique media paths referenced by the deck's
// cards, in first-reference order.
func (d *Deck) MediaFiles() []string {
	seen := make(map[string]bool)
	var files []string
	for _, sub := range d.Subdecks {
		for _, card := range sub.Cards {
			for _, path := range card.Media {
				if !seen[path] {
					seen[path] = true
					files = append(files, path)
				}
			}
		}
	}
	return files
}

// FullDeckName returns the Anki-style qualified name for a subdeck:
// "deck::subdeck", or the bare deck name for the reserved default subdeck.
func FullDeckName(deckName, subdeckName string) string {
	if subdeckName == DefaultSubdeckName {
		return deckName
	}
	return deckName + "::" + subdeckName
}
