package ankify

// Card represents a single flashcard extracted from a Notion callout.
type Card struct {
	// Front is the prompt side as plain text.
	Front string

	// Back is the answer side as an HTML fragment. Media references inside
	// it have already been rewritten to bare filenames, except references
	// whose asset could not be found, which keep their original form.
	Back string

	// Tags are the hashtags collected from the callout text: lowercase,
	// unique, sorted ascending.
	Tags []string

	// Media lists the asset paths referenced from Back, in the order they
	// were resolved. Every rewritten reference in Back has exactly one
	// entry here.
	Media []string
}

// Validate returns an error if the card contains invalid fields.
func (c *Card) Validate() error {
	if c.Front == "" {
		return Errorf(EINVALID, "card front required")
	}
	return nil
}
