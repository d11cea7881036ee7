// Package ankify converts exported Notion documents into Anki flashcard
// decks. It parses the tree shape of a Notion HTML export (collapsible
// details sections, callout figures, inline hashtags, media references)
// into a deck/subdeck/card model that serializers turn into .apkg
// packages or CSV files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, apkg/).
package ankify
