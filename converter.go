package ankify

// Converter converts HTML fragments to a plain-text representation.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown-flavored plain
	// text. Used by tabular exports that should not carry raw markup.
	Convert(html string) (string, error)
}
