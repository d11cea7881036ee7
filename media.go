package ankify

import "strings"

// AudioExtensions lists the asset extensions rewritten to Anki sound
// markers. Image references are not filtered by extension; Notion only
// emits img elements for actual images.
var AudioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a"}

// MediaRef is the result of resolving an in-markup media reference
// against an assets directory.
type MediaRef struct {
	// Name is the URL-decoded basename of the reference.
	Name string

	// Path is the location in the assets directory the reference
	// resolves to.
	Path string

	// Found reports whether a file exists at Path.
	Found bool
}

// MediaResolver resolves raw markup references (possibly URL-encoded
// paths) to local asset files. Resolving never mutates markup; callers
// decide whether to rewrite a reference based on Found.
type MediaResolver interface {
	Resolve(ref string) MediaRef
}

// IsAudioRef reports whether ref points at a supported audio asset.
func IsAudioRef(ref string) bool {
	lower := strings.ToLower(ref)
	for _, ext := range AudioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
